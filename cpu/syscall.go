package cpu

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mips32repl/mips32repl/register"
)

// Syscall codes, conventionally passed in $v0.
const (
	sysPrintInt       = 1
	sysPrintString    = 4
	sysReadInt        = 5
	sysReadString     = 8
	sysExit           = 10
	sysPrintChar      = 11
	sysReadChar       = 12
	sysExit2          = 17
	sysTime           = 30
	sysSleep          = 32
	sysPrintIntHex    = 34
	sysPrintIntBin    = 35
	sysPrintIntUnsign = 36
)

// execSyscall dispatches on $v0. Errors reading stdin, or an
// unrecognized code, are execution warnings printed to Stderr rather
// than faults: a bad syscall does not stop the interpreter.
func (e *Engine) execSyscall() {
	code := e.Registers.Get(register.V0)

	switch code {
	case sysPrintInt:
		fmt.Fprintf(e.Stdout, "%d", int32(e.Registers.Get(register.A0)))
	case sysPrintString:
		e.Stdout.Write(e.Memory.ReadCString(e.Registers.Get(register.A0)))
	case sysReadInt:
		line := e.readLine()
		v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if err != nil {
			fmt.Fprintf(e.Stderr, "invalid integer input: %q\n", line)
			return
		}
		e.Registers.Set(register.V0, uint32(int32(v)))
	case sysReadString:
		addr := e.Registers.Get(register.A0)
		maxLen := e.Registers.Get(register.A1)
		line := e.readLine()
		if uint32(len(line)+1) > maxLen && maxLen > 0 {
			line = line[:maxLen-1]
		}
		payload := append([]byte(line), 0)
		e.Memory.LoadBytes(addr, payload)
	case sysExit:
		e.Exited = true
		e.ExitCode = 0
	case sysPrintChar:
		fmt.Fprintf(e.Stdout, "%c", rune(e.Registers.Get(register.A0)))
	case sysReadChar:
		b, err := e.Stdin.ReadByte()
		if err != nil {
			fmt.Fprintf(e.Stderr, "read error: %v\n", err)
			return
		}
		e.Registers.Set(register.V0, uint32(b))
	case sysExit2:
		e.Exited = true
		e.ExitCode = int(int32(e.Registers.Get(register.A0)))
	case sysTime:
		now := uint64(time.Now().UnixMilli())
		e.Registers.Set(register.A0, uint32(now))
		e.Registers.Set(register.A1, uint32(now>>32))
	case sysSleep:
		time.Sleep(time.Duration(e.Registers.Get(register.A0)) * time.Millisecond)
	case sysPrintIntHex:
		fmt.Fprintf(e.Stdout, "0x%08x", e.Registers.Get(register.A0))
	case sysPrintIntBin:
		fmt.Fprintf(e.Stdout, "%032b", e.Registers.Get(register.A0))
	case sysPrintIntUnsign:
		fmt.Fprintf(e.Stdout, "%d", e.Registers.Get(register.A0))
	default:
		fmt.Fprintf(e.Stderr, "unrecognized syscall code %d\n", code)
	}
}

// readLine reads one newline-terminated line from stdin, trimming the
// trailing newline. EOF with partial content still returns what was
// read, matching bufio.Reader.ReadString's contract.
func (e *Engine) readLine() string {
	line, err := e.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}
