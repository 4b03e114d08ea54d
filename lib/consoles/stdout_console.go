package consoles

import (
	"fmt"
	"strings"
	"time"
)

type stdoutConsole struct {
}

func NewStdOutConsole() Console {
	return &stdoutConsole{}
}

func (o stdoutConsole) Printf(format string, a ...any) {
	builder := strings.Builder{}
	builder.WriteString("[")
	builder.WriteString(time.Now().Format("15:04:05"))
	builder.WriteString("] ")
	builder.WriteString(fmt.Sprintf(format, a...))
	print(builder.String())
}
