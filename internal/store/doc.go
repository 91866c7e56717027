/*
Package store implements the reducer engine the application state is built on.

# Reducers

A Reducer mutates a state value in place in response to an action. Larger
reducers are assembled from smaller ones:

  - Combine runs reducers in sequence
  - Scope runs a child reducer on a field of the parent state
  - IfLet does the same for an optional (pointer) child, reporting actions
    that arrive while the child is absent
  - OnChange compares a watched value before and after the wrapped reducer
    and runs a relay on the resulting state when it changed

# Store

Store owns one state value. Send processes an action to completion,
including relays, before the next queued action is looked at. Observers
registered with Subscribe see a Change carrying before/after snapshots;
PrintChanges is an observer that logs a go-cmp diff for each action.

State types implement Cloner so that each dispatch works on its own copy and
snapshots handed to observers are never mutated afterwards.
*/
package store
