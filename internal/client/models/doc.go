// Package models defines the client-side domain types of the bereal CLI:
// users, posts, comments, stored files and local notification requests.
//
// The types are plain values decoupled from any transport; the gateway in
// package client converts them to and from the backend wire format.
package models
