package model

import "bufio"
import "fmt"
import "io"
import "os"
import "strings"

// Confirmer asks the operator a yes or no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to a Confirmer
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// LineConfirmer writes the prompt to Out and accepts a line reading exactly "y" from In
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// StdinConfirmer prompts on stdout and reads stdin
func StdinConfirmer() LineConfirmer {
	return LineConfirmer{In: os.Stdin, Out: os.Stdout}
}

// Confirm prompts and reads one line. End of input declines.
func (c LineConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprint(c.Out, prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimRight(line, "\r\n") == "y", nil
}
