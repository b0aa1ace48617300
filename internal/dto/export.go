package dto

type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
