package dto

// CleanupTempAudioMessage asks the background consumer to delete a
// temporary upload once processing finished.
type CleanupTempAudioMessage struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}
