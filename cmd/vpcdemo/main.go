// Command vpcdemo runs the compositor on a YAML request and prints the
// passes it would submit.
//
// Usage:
//
//	vpcdemo -request testdata/overlay.yaml [-legacy] [-avs] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/vpcomp"
	"github.com/gogpu/vpcomp/diag"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/sfc"
)

// maxPasses bounds the pass loop; every pass admits at least one layer.
const maxPasses = 16

func main() {
	var (
		path    = flag.String("request", "", "YAML request file (default stdin)")
		legacy  = flag.Bool("legacy", false, "use the fixed-function compositor")
		avs     = flag.Bool("avs", false, "hardware has an AVS sampler")
		noFast  = flag.Bool("no-fast-path", false, "disable the fast-path kernel")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		vpcomp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	in := io.Reader(os.Stdin)
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	j, err := decode(in)
	if err != nil {
		log.Fatal(err)
	}

	opts := []vpcomp.Option{vpcomp.WithCaps(vpcomp.Caps{AVS: *avs})}
	if *legacy {
		opts = append(opts, vpcomp.WithLegacyFallback())
	}
	if *noFast {
		opts = append(opts, vpcomp.WithFastPathDisabled())
	}
	if *verbose {
		opts = append(opts, vpcomp.WithDiagnostics(diag.NewSlogSink(nil)))
	}

	if err := run(os.Stdout, j, opts); err != nil {
		log.Fatal(err)
	}
}

// run composes j pass by pass until no layer is deferred, then checks the
// optional scaler conversion. Output goes to w.
func run(w io.Writer, j *job, opts []vpcomp.Option) error {
	p := printer{w: w, p: message.NewPrinter(language.English)}
	c, err := vpcomp.New(opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	req := j.req
	for pass := 1; ; pass++ {
		if pass > maxPasses {
			return fmt.Errorf("no progress after %d passes", maxPasses)
		}
		res, err := c.Compose(req, j.set)
		if errors.Is(err, vpcomp.ErrNoLayersAdmitted) {
			p.printf("pass %d: nothing admitted (%s)\n", pass, res.Reason)
			return err
		}
		if err != nil {
			return err
		}
		printResult(p, pass, res)
		if len(res.Deferred) == 0 {
			break
		}
		req = remaining(req, res.Deferred)
	}

	if j.sfc != nil {
		st, err := sfc.Build(j.sfc)
		if err != nil {
			p.printf("sfc: %v\n", err)
			return nil
		}
		printSFC(p, st)
	}
	return nil
}

type printer struct {
	w io.Writer
	p *message.Printer
}

func (p printer) printf(format string, args ...any) {
	p.p.Fprintf(p.w, format, args...)
}

// remaining returns req restricted to the deferred layers. Later passes
// draw over the earlier output, so they carry no color fill.
func remaining(req *layer.Request, deferred []layer.Layer) *layer.Request {
	next := &layer.Request{Output: req.Output, Alpha: req.Alpha}
	for i := range deferred {
		next.Inputs = append(next.Inputs, req.Inputs[deferred[i].OriginID])
	}
	return next
}

func printResult(p printer, pass int, res *vpcomp.Result) {
	p.printf("pass %d: %s, %d admitted, %d deferred, %d removed\n",
		pass, res.Strategy, len(res.Admitted), len(res.Deferred), len(res.Removed))
	if res.Legacy != nil {
		for i := range res.Legacy.Layers {
			l := &res.Legacy.Layers[i]
			p.printf("  layer %d: %s %s scale %.3f x %.3f\n", l.Layer.OriginID, l.Layer.Format,
				l.Layer.Scaling, l.Geometry.ScaleX, l.Geometry.ScaleY)
		}
		return
	}
	for _, d := range res.Jobs() {
		var bytes int
		for _, a := range d.Args {
			bytes += len(a.Data)
		}
		p.printf("  %s: %d args (%d bytes), %d surfaces, %d x %d groups\n",
			d.Kernel, len(d.Args), bytes, len(d.Surfaces), d.Threads[0], d.Threads[1])
	}
}

func printSFC(p printer, st *sfc.State) {
	p.printf("sfc: %s %s -> %s, ordering %s\n", st.Pipe, st.InputFormat, st.OutputFormat, st.Ordering)
	p.printf("  frame %d x %d -> %d x %d, scale %.3f x %.3f\n",
		st.InputFrame.Width, st.InputFrame.Height, st.OutputFrame.Width, st.OutputFrame.Height,
		st.ScaleX, st.ScaleY)
	p.printf("  csc %t, avs line buffer %d bytes\n", st.CSCEnabled, st.AVSLineBufferSize)
}
