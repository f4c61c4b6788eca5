package publish

import "fmt"

// PublishError indicates the control plane rejected the push
type PublishError struct {
	StatusCode int
	Body       string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to sync environments with control plane: %d %s", e.StatusCode, e.Body)
}
