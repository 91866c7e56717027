package store

// Reducer applies an action to state in place. Reducers are synchronous and
// must not retain the state pointer after returning.
type Reducer[S any, A any] func(state *S, action A)

// Combine runs reducers in order against the same state.
func Combine[S any, A any](reducers ...Reducer[S, A]) Reducer[S, A] {
	return func(state *S, action A) {
		for _, r := range reducers {
			if r != nil {
				r(state, action)
			}
		}
	}
}

// OnChange wraps reducer with a one-way relay. After reducer has fully
// processed an action, extract is compared against its value from before the
// action; relay runs only when the two differ and always sees the resulting
// state, never an intermediate one.
func OnChange[S any, A any, V comparable](reducer Reducer[S, A], extract func(*S) V, relay func(state *S, prev, next V)) Reducer[S, A] {
	return func(state *S, action A) {
		prev := extract(state)
		reducer(state, action)
		next := extract(state)
		if prev != next {
			relay(state, prev, next)
		}
	}
}

// Scope embeds a child reducer into a parent. toChild reports whether the
// parent action carries a child action; other actions are ignored.
func Scope[S any, A any, CS any, CA any](
	childState func(*S) *CS,
	toChild func(A) (CA, bool),
	child Reducer[CS, CA],
) Reducer[S, A] {
	return func(state *S, action A) {
		ca, ok := toChild(action)
		if !ok {
			return
		}
		child(childState(state), ca)
	}
}

// IfLet embeds a reducer for optional child state. When the child action
// arrives while the child state is absent, missing is called instead and the
// state is left untouched.
func IfLet[S any, A any, CS any, CA any](
	childState func(*S) **CS,
	toChild func(A) (CA, bool),
	child Reducer[CS, CA],
	missing func(CA),
) Reducer[S, A] {
	return func(state *S, action A) {
		ca, ok := toChild(action)
		if !ok {
			return
		}
		ptr := childState(state)
		if *ptr == nil {
			if missing != nil {
				missing(ca)
			}
			return
		}
		child(*ptr, ca)
	}
}

// Named is implemented by actions that carry a stable wire name.
type Named interface {
	ActionName() string
}

// NameOf returns the action's name, or its Go type when it has none.
func NameOf(action any) string {
	if n, ok := action.(Named); ok {
		return n.ActionName()
	}
	if action == nil {
		return "<nil>"
	}
	return typeName(action)
}
