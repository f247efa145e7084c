package bitvector

import "github.com/cockroachdb/errors"

// ErrNotBuilt is the value Rank and Select panic with when BuildHelpers has
// not run first. The core engine otherwise trusts its preconditions per
// spec.md §7 (rank/select on an un-built index are caller errors, not
// recoverable ones), but the pre-build/post-build state split is cheap to
// check and easy to get wrong from the outside, so BuildHelpers itself
// guards against being called twice and Rank/Select guard against being
// called too early.
var ErrNotBuilt = errors.New("bitvector: BuildHelpers has not been called")

// ErrAlreadyBuilt is returned by BuildHelpers when called a second time on
// the same instance; the structure is immutable once indexed (spec.md §3
// Lifecycle) and rebuilding would silently double-count.
var ErrAlreadyBuilt = errors.New("bitvector: BuildHelpers has already been called")
