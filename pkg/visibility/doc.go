// Package visibility implements the show/hide state machine behind a
// floating panel.
//
// A [Controller] reacts to interaction events according to its [Mode]:
//
//   - hover: pointer-enter shows, pointer-leave hides. Both are deferred
//     through a [Scheduler] so that leaving the trigger and entering the
//     panel in the same tick collapses into a no-op. Only one deferred
//     transition exists at a time; a newer one replaces it.
//   - click: each click toggles. While visible, a pointer-down anywhere
//     outside the trigger and the panel hides the panel.
//   - focus: focus shows, blur hides.
//
// # Controlled and uncontrolled use
//
// The [Source] passed to [New] selects who owns the state. With [Internal]
// the controller mutates its own state and then notifies. With [External]
// the controller never mutates: it reports the desired transition through
// External.OnChange and waits for the owner to call [Controller.SetVisible].
package visibility
