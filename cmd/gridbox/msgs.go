package gridbox

// User-facing messages for the gridbox CLI
const (
	MsgRootShort = "A serialization toolkit for scientific data"

	MsgRootLong = `gridbox serializes simulation field data through pluggable archive
backends. Backends register themselves at startup and are selected by
name, so frontends can discover and use storage formats without
linking against backend-specific code.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagArchive = "Archive backend to use (defaults to the configured default)"
	MsgFlagFormat  = "Output format: text or yaml"

	MsgArchivesShort = "List registered archive backends"
	MsgArchivesLong  = `List the names of all registered archive backends in deterministic
(lexicographic) order. The configured default backend is marked.`

	MsgInspectShort = "Show the contents of a serialized dataset"
	MsgInspectLong  = `Inspect a dataset directory: list its fields and their sizes, and
optionally compute summary statistics for float64 payloads.`

	MsgVerifyShort = "Verify the integrity of a serialized dataset"
	MsgVerifyLong  = `Read back every field of a dataset and verify its checksum against
the field table.`

	MsgVersionShort = "Print version information"
)
