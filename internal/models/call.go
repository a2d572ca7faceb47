package models

// CallKind is the call-lifecycle state: none, voice or video.
type CallKind string

const (
	CallNone  CallKind = "none"
	CallVoice CallKind = "voice"
	CallVideo CallKind = "video"
)
