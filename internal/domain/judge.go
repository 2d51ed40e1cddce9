package domain

// Judge0 status ids
const (
	JudgeStatusInQueue          = 1
	JudgeStatusProcessing       = 2
	JudgeStatusAccepted         = 3
	JudgeStatusWrongAnswer      = 4
	JudgeStatusTimeLimit        = 5
	JudgeStatusCompilationError = 6
)

// JudgeStatus is the status descriptor returned by the remote judge
type JudgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// JudgeResponse is the raw verdict of the remote judge. The stream fields are base64 encoded.
type JudgeResponse struct {
	Status        JudgeStatus `json:"status"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Message       *string     `json:"message"`
	// Time is the elapsed wall time in seconds, as a decimal string.
	Time   *string  `json:"time"`
	Memory *float64 `json:"memory"`
}
