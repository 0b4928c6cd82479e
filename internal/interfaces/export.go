package interfaces

// ExportSink receives rendered export bytes. Writing to a destination (file
// path, test report collector) is the sink's responsibility; the exporter
// itself only produces the byte sequence.
type ExportSink interface {
	Write(name string, data []byte) error
}
