package mq

type request struct {
	UUID     string                 `json:"uuid"`
	UserID   int                    `json:"user_id"`
	Template string                 `json:"template"`
	Language string                 `json:"language"`
	Payload  map[string]interface{} `json:"payload"`
}

type response struct {
	UUID     string `json:"uuid"`
	UserID   int    `json:"user_id"`
	FileName string `json:"file_name,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Document []byte `json:"document,omitempty"`
}
