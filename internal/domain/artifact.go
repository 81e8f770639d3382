package domain

// ArchiveName is the file name of the combined archive artifact.
const ArchiveName = "converted.zip"

// OutputArtifact is a named byte blob ready for delivery, either a single
// converted dataset or the combined archive. Artifacts are derived 1:1 from
// successful conversion results and live only for the session that produced
// them.
type OutputArtifact struct {
	Name string
	Data []byte
}
