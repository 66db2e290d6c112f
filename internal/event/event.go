// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeDocumentModified // Fired when the document tree or its attributes change
	TypeDocumentLoaded   // Fired after a document is successfully loaded
	TypeDocumentSaved    // Fired after a document is successfully saved
	TypeSelectionChanged // Fired when the element selection changes
	TypeHistoryChanged   // Fired after any successful history stack mutation
	TypeModeChanged      // Fired when the editor mode changes (e.g., Normal -> Text)

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// DocumentModifiedData describes which element changed, when known.
type DocumentModifiedData struct {
	Path string // locator of the mutated element, "" for whole-tree changes
}

// DocumentLoadedData contains info about the loaded document.
type DocumentLoadedData struct {
	FilePath string
}

// DocumentSavedData contains info about the saved document.
type DocumentSavedData struct {
	FilePath string
}

// SelectionChangedData carries the locators of the newly selected elements.
type SelectionChangedData struct {
	Paths []string
}

// HistoryChangedData is the {canUndo, canRedo} snapshot emitted after every
// successful stack mutation.
type HistoryChangedData struct {
	CanUndo bool
	CanRedo bool
}

// ModeChangedData carries the new editor mode name.
type ModeChangedData struct {
	Mode string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
