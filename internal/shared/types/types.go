package types

// Category groups capability providers by the native facility they front.
type Category string

const (
	CategoryDetection Category = "detection"
	CategoryVision    Category = "vision"
	CategorySystem    Category = "system"
)

// Service represents a capability provider definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a single provider operation
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context carries optional caller identity through a provider call
type Context struct {
	HostID    *string `json:"host_id,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
}

// Result is the tagged outcome of a provider call. The external C surface
// collapses this to string-or-null; inside the module failure always carries
// a message.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Success builds a successful result
func Success(data map[string]interface{}) (*Result, error) {
	return &Result{Success: true, Data: data}, nil
}

// Failure builds a failed result
func Failure(message string) (*Result, error) {
	msg := message
	return &Result{Success: false, Error: &msg}, nil
}
