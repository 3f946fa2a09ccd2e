// Package event provides a small synchronous event bus for interaction
// intents.
//
// Recognizers and key bindings publish intents such as "intent.undo" or
// "intent.swipe.left"; host logic subscribes to them and performs the
// matching edit or navigation. Publishers never know who handles an
// intent.
//
// # Topics
//
// Topics are dot-separated names. Subscription patterns may contain
// wildcards:
//
//	"intent.swipe.*"  // matches intent.swipe.left and intent.swipe.right
//	"refresh.**"      // matches refresh.completed, refresh.failed, ...
//
// # Delivery
//
// Publish delivers to every matching subscriber in subscription order on
// the caller's goroutine. Handler errors are joined and returned; handler
// panics are recovered, counted, and reported as ErrHandlerPanic so that
// one faulty listener cannot take down the input loop.
//
// # Scoped Subscriptions
//
// A Subscription is released with Unsubscribe. Close releases every
// subscription at once; the owner of a bus closes it on teardown so no
// listener outlives its component.
package event
