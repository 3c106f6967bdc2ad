package state

import "context"

// step describes one optimistic transition. Every hook except remote runs
// with the store lock held; remote runs without it.
type step[T any] struct {
	// apply mutates local state before the remote call. May be nil.
	apply func()
	// remote performs the backend call.
	remote func(ctx context.Context) (T, error)
	// commit reconciles local state with the result. May be nil.
	commit func(T)
	// revert undoes apply after a failure. May be nil.
	revert func(error)
}

// optimistic runs st against s: apply, notify, remote, then commit or revert,
// notify. Observers see the optimistic state before remote starts.
func optimistic[T any](ctx context.Context, s *Store, st step[T]) (T, error) {
	if st.apply != nil {
		s.mu.Lock()
		st.apply()
		s.mu.Unlock()
		s.notify()
	}

	result, err := st.remote(ctx)

	s.mu.Lock()
	if err != nil {
		if st.revert != nil {
			st.revert(err)
		}
	} else if st.commit != nil {
		st.commit(result)
	}
	s.mu.Unlock()
	s.notify()

	return result, err
}
