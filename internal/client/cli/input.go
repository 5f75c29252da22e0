package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword и isTerminal подменяются в тестах, чтобы не обращаться к терминалу.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine читает одну строку без завершающего перевода строки. Если ввод
// закончился после части строки, возвращается прочитанная часть.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// getText выводит подсказку и читает одну строку. Если ввод закончился
// после части строки, возвращается прочитанная часть.
func getText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getPassword читает пароль из терминала без эха. Если stdin не терминал,
// пароль читается строкой из reader, как и остальной ввод.
func getPassword(reader *bufio.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return readLine(reader)
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
