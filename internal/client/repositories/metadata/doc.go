// Package metadata stores small string settings of the local client: the
// signed-in session and the notification permission decision.
package metadata
