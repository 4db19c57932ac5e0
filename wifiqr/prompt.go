package wifiqr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks for missing network details on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// ReadPassword, when set, reads the password without echo.
	ReadPassword func() (string, error)
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask lists the fields the user still has to supply.
type Ask struct {
	Security bool
	Hidden   bool
}

// Fill prompts for an empty SSID, the security type and hidden flag when
// asked to, and an empty password unless the network is open.
func (p *Prompter) Fill(n *Network, ask Ask) error {
	var err error
	for n.SSID == "" {
		if n.SSID, err = p.line("Network name (SSID): "); err != nil {
			return err
		}
	}
	if ask.Security {
		for {
			answer, err := p.line("Security [WPA/WEP/nopass] (WPA): ")
			if err != nil {
				return err
			}
			if answer == "" {
				answer = string(WPA)
			}
			sec, err := ParseSecurity(answer)
			if err == nil {
				n.Security = sec
				break
			}
			fmt.Fprintln(p.out, err)
		}
	}
	if n.Security != NoPass {
		for n.Password == "" {
			if n.Password, err = p.password("Password: "); err != nil {
				return err
			}
		}
	}
	if ask.Hidden {
		answer, err := p.line("Hidden network? [y/N]: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "y", "yes", "true":
			n.Hidden = true
		}
	}
	return nil
}

func (p *Prompter) line(prompt string) (string, error) {
	s, err := p.rawLine(prompt)
	return strings.TrimSpace(s), err
}

// rawLine keeps surrounding spaces, which may be part of a password.
func (p *Prompter) rawLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *Prompter) password(prompt string) (string, error) {
	if p.ReadPassword == nil {
		return p.rawLine(prompt)
	}
	fmt.Fprint(p.out, prompt)
	s, err := p.ReadPassword()
	fmt.Fprintln(p.out)
	return s, err
}
