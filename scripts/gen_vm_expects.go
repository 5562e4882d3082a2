package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	caseType = flag.String("type", "vmTestCase", "test case builder type")
	infix    = flag.String("infix", "VM", "infix for generated wrapper names")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		args = args[1:]
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("gofmt run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

// paramNames returns the names of a parameter list, marking a variadic
// parameter with "...". Grouped parameters like "x, y int" are supported.
func paramNames(params []byte) [][]byte {
	var names [][]byte
	for _, part := range bytes.Split(params, []byte(",")) {
		fields := bytes.Fields(part)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			name = append(append([]byte(nil), name...), "..."...)
		}
		names = append(names, name)
	}
	return names
}

func run(ctx context.Context) error {
	builderMethod := regexp.MustCompile(fmt.Sprintf(
		`func \(vmt %[1]v\) (expect|with)(.+?)\((.+?)\) %[1]v`,
		regexp.QuoteMeta(*caseType)))

	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := builderMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			var (
				baseName = match[1]
				whatName = match[2]
				params   = match[3]
			)
			fmt.Fprintf(&buf, "func %s%v%s(%s) func(%v) %v {\n", baseName, *infix, whatName, params, *caseType, *caseType)
			fmt.Fprintf(&buf, "  return func(vmt %v) %v {\n", *caseType, *caseType)
			fmt.Fprintf(&buf, "    return vmt.%s%s(%s)\n", baseName, whatName, bytes.Join(paramNames(params), []byte(", ")))
			buf.WriteString("  }\n")
			buf.WriteString("}\n\n")
		}

		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}
