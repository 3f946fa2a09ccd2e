// Package anim animates values with a critically damped spring.
//
// The host uses it to return the swipe offset to zero after release
// instead of jumping, so the page slides back into place.
package anim
