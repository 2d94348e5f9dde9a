package models

// ContextKind tags one entry of worker input context.
type ContextKind string

const (
	// ContextMedia references an attached image or other media.
	ContextMedia ContextKind = "media"
	// ContextSide carries caller-supplied side context (preferences, profile data).
	ContextSide ContextKind = "side_context"
	// ContextPreviousResult carries the output of an earlier successful step.
	ContextPreviousResult ContextKind = "previous_result"
)

// ContextEntry is one tagged item of input context supplied to a worker call.
// Exactly one of the payload fields is set, according to Kind.
type ContextEntry struct {
	// Kind tags which payload field is populated.
	Kind ContextKind `json:"kind"`
	// Ref is the media reference. Set when Kind == ContextMedia.
	Ref string `json:"ref,omitempty"`
	// Payload is the caller's side context, passed through unparsed.
	// Set when Kind == ContextSide.
	Payload map[string]string `json:"payload,omitempty"`
	// Origin is the worker that produced the previous result.
	// Set when Kind == ContextPreviousResult.
	Origin WorkerID `json:"origin,omitempty"`
	// Content is the previous result text. Set when Kind == ContextPreviousResult.
	Content string `json:"content,omitempty"`
}

// MediaEntry builds a media-reference context entry.
func MediaEntry(ref string) ContextEntry {
	return ContextEntry{Kind: ContextMedia, Ref: ref}
}

// SideEntry builds a side-context entry from caller-supplied data.
func SideEntry(payload map[string]string) ContextEntry {
	return ContextEntry{Kind: ContextSide, Payload: payload}
}

// PreviousResultEntry builds a context entry carrying an earlier step's output.
func PreviousResultEntry(origin WorkerID, content string) ContextEntry {
	return ContextEntry{Kind: ContextPreviousResult, Origin: origin, Content: content}
}
