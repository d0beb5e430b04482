package common

// Parse REST API headers.
const (
	HeaderApplicationID = "X-Parse-Application-Id"
	HeaderRESTAPIKey    = "X-Parse-REST-API-Key"
	HeaderSessionToken  = "X-Parse-Session-Token"
)

// Parse error codes the client reacts to.
const (
	CodeObjectNotFound      = 101
	CodeInvalidSessionToken = 209
)

// DailyNotificationID identifies the daily reminder both when it is
// scheduled and when a delivered one is opened.
const DailyNotificationID = "bereal.daily"
