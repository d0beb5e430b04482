// Package notify schedules the daily "time to post" reminder.
//
// # Overview
//
// Center is the local notification subsystem: reminder requests live in the
// SQLite notifications table and move pending -> delivered -> opened.
// Scheduler owns the permission state machine
//
//	Unrequested -> PermissionPending -> Granted | Denied
//
// and, once Granted, keeps exactly one pending daily reminder at a random
// time between 08:00 and 22:59 of the next local day. Deliverer polls the
// Center and hands due reminders to the UI goroutine.
//
// Opening a delivered daily reminder raises the open-camera signal, a
// one-slot channel that coalesces repeated taps.
package notify
