package constants

import "time"

const (
	Version        = `0.1.0`
	AppName        = `colecto`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.colecto/`
	LogFile        = `colecto.log`
	EnvPrefix      = `COLECTO`

	// NoteExt is the only extension recognized as a note.
	NoteExt = `.md`

	// UntitledPrefix is the base name used for notes created without a title.
	UntitledPrefix = `Untitled Note`

	DefaultServerAddr = `127.0.0.1:4590`
)

const DefaultAutosaveInterval = 2 * time.Second
