package templater

// Request to fill one template.
type Request struct {
	UUID     string
	UserID   int
	Template string
	Language string
	Payload  map[string]interface{}
}

// Response with the filled document and its published location.
type Response struct {
	UUID     string
	UserID   int
	FileName string
	FileURL  string
	Document []byte
}
