package app

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/bcnbhd/config"
	"github.com/katalvlaran/bcnbhd/counts"
	"github.com/katalvlaran/bcnbhd/group"
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
	"github.com/katalvlaran/bcnbhd/online"
	"github.com/katalvlaran/bcnbhd/report"
	"github.com/katalvlaran/bcnbhd/umi"
)

func runCount(r *runner, args []string) error {
	fs, err := r.flagSet(args)
	if err != nil {
		return err
	}
	out := fs.String("o", "-", "count table output path")
	freq := fs.String("freq", "", "optional frequency table output path")
	rest, err := r.parse(fs, args, 1, 1)
	if err != nil {
		return err
	}

	if err := r.phase("reading", zap.String("input", rest[0])); err != nil {
		return err
	}
	c, err := counts.FromFASTQ(rest[0])
	if err != nil {
		return err
	}

	if err := r.phase("writing", zap.Int("barcodes", c.Len()), zap.Int("reads", c.Total())); err != nil {
		return err
	}
	o, err := r.create(*out)
	if err != nil {
		return err
	}
	if err := c.Write(o); err != nil {
		closeAll(o)
		return err
	}
	if err := o.Close(); err != nil {
		return err
	}
	if *freq == "" {
		return nil
	}
	f, err := r.create(*freq)
	if err != nil {
		return err
	}
	if err := c.WriteFreqTable(f); err != nil {
		closeAll(f)
		return err
	}
	return f.Close()
}

func runCollapse(r *runner, args []string) error {
	fs, err := r.flagSet(args)
	if err != nil {
		return err
	}
	fs.StringVar(&r.cfg.Output, "o", r.cfg.Output, "output base; writes <base>"+config.SuffixMemberMap+", <base>"+config.SuffixTotals+", <base>"+config.SuffixNeighborhoods)
	lines := fs.Bool("lines", false, "input is one barcode per line instead of a count table")
	stream := fs.Bool("online", false, "cluster incrementally while reading instead of after")
	rest, err := r.parse(fs, args, 1, 1)
	if err != nil {
		return err
	}
	if r.cfg.Output == "" {
		return usagef("collapse: -o output base is required")
	}

	var nbhds []*nb.Neighborhood[nb.Count]
	if *stream {
		if nbhds, err = r.collapseOnline(rest[0], *lines); err != nil {
			return err
		}
	} else {
		if nbhds, err = r.collapseBatch(rest[0], *lines); err != nil {
			return err
		}
	}

	if err := r.phase("writing", zap.String("output", r.cfg.Output)); err != nil {
		return err
	}
	return r.writeReports(nbhds)
}

func (r *runner) collapseBatch(path string, lines bool) ([]*nb.Neighborhood[nb.Count], error) {
	if err := r.phase("reading", zap.String("input", path)); err != nil {
		return nil, err
	}
	c, err := readCounts(path, lines)
	if err != nil {
		return nil, err
	}

	if err := r.phase("clustering", zap.Int("barcodes", c.Len()), zap.Stringer("traversal", traversal(r.cfg.Traversal))); err != nil {
		return nil, err
	}
	nbhds := nb.Gather(c.CountMap(), r.opts...)
	r.progress.Done()
	for _, n := range nbhds {
		nb.SortByCounts(n)
	}
	nb.SortNeighborhoods(nbhds)
	return nbhds, nil
}

// collapseOnline clusters each sequence as it is read.
func (r *runner) collapseOnline(path string, lines bool) ([]*nb.Neighborhood[nb.Count], error) {
	if err := r.phase("reading and clustering", zap.String("input", path)); err != nil {
		return nil, err
	}
	cl := online.New()
	if lines {
		if err := counts.EachLine(path, cl.Insert); err != nil {
			return nil, err
		}
	} else {
		c, err := counts.ReadFile(path)
		if err != nil {
			return nil, err
		}
		for seq, n := range c.All() {
			cl.Add([]byte(seq), n)
		}
	}
	r.log.Info("clustering done", zap.Int("sequences", cl.Len()), zap.Int("neighborhoods", cl.Clusters()))
	return cl.Neighborhoods(), nil
}

func readCounts(path string, lines bool) (*counts.SampleCounts, error) {
	if !lines {
		return counts.ReadFile(path)
	}
	return counts.FromLinesFile(path)
}

// writeReports writes the three neighborhood tables next to cfg.Output.
func (r *runner) writeReports(nbhds []*nb.Neighborhood[nb.Count]) error {
	var outs [3]*output
	for i, suffix := range []string{config.SuffixTotals, config.SuffixMemberMap, config.SuffixNeighborhoods} {
		o, err := r.create(r.cfg.OutputPath(suffix))
		if err != nil {
			closeAll(outs[:]...)
			return err
		}
		outs[i] = o
	}

	set := report.NewSet(outs[0], outs[1], outs[2])
	if r.cfg.Header {
		if err := set.WriteHeaders(); err != nil {
			closeAll(outs[:]...)
			return err
		}
	}
	if err := set.WriteAll(nbhds); err != nil {
		closeAll(outs[:]...)
		return err
	}
	return closeAll(outs[:]...)
}

func runUMI(r *runner, args []string) error {
	fs, err := r.flagSet(args)
	if err != nil {
		return err
	}
	out := fs.String("o", "-", "UMI table output path")
	fs.BoolVar(&r.cfg.UMI.CollapseBarcodes, "collapse-barcodes", r.cfg.UMI.CollapseBarcodes, "merge barcodes one edit apart")
	fs.BoolVar(&r.cfg.UMI.Dedup, "dedup", r.cfg.UMI.Dedup, "merge UMIs one edit apart within each barcode")
	rest, err := r.parse(fs, args, 1, 1)
	if err != nil {
		return err
	}

	if err := r.phase("reading", zap.String("input", rest[0])); err != nil {
		return err
	}
	t, err := umi.FromFASTQ(rest[0])
	if err != nil {
		return err
	}

	if r.cfg.UMI.CollapseBarcodes {
		if err := r.phase("clustering barcodes", zap.Int("barcodes", len(t))); err != nil {
			return err
		}
		t = umi.CollapseBarcodes(t, r.opts...)
		r.progress.Done()
	}
	if r.cfg.UMI.Dedup {
		if err := r.phase("deduplicating umis", zap.Int("barcodes", len(t))); err != nil {
			return err
		}
		t = umi.Dedup(t, nb.WithTraversal(traversal(r.cfg.Traversal)))
	}

	if err := r.phase("writing", zap.Int("barcodes", len(t))); err != nil {
		return err
	}
	o, err := r.create(*out)
	if err != nil {
		return err
	}
	if r.cfg.Header {
		if _, err := o.WriteString(umi.Header + "\n"); err != nil {
			closeAll(o)
			return err
		}
	}
	if err := umi.Write(o, t); err != nil {
		closeAll(o)
		return err
	}
	return o.Close()
}

func runGroup(r *runner, args []string) error {
	fs, err := r.flagSet(args)
	if err != nil {
		return err
	}
	fs.StringVar(&r.cfg.Output, "o", r.cfg.Output, "output base; writes <base>"+config.SuffixGrouped+" and the neighborhood tables")
	rest, err := r.parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	if r.cfg.Output == "" {
		return usagef("group: -o output base is required")
	}

	if err := r.phase("reading", zap.String("barcodes", rest[0]), zap.String("reads", rest[1])); err != nil {
		return err
	}
	g, err := group.FromPairedFASTQ(rest[0], rest[1])
	if err != nil {
		return err
	}

	if err := r.phase("clustering", zap.Int("barcodes", len(g))); err != nil {
		return err
	}
	nbhds := group.Collapse(g, r.opts...)
	r.progress.Done()

	if err := r.phase("writing", zap.String("output", r.cfg.Output)); err != nil {
		return err
	}
	o, err := r.create(r.cfg.OutputPath(config.SuffixGrouped))
	if err != nil {
		return err
	}
	if err := group.WriteFASTQ(o, nbhds); err != nil {
		closeAll(o)
		return err
	}
	if err := o.Close(); err != nil {
		return err
	}
	return r.writeReports(group.Counts(nbhds))
}

func runTabulate(r *runner, args []string) error {
	fs, err := r.flagSet(args)
	if err != nil {
		return err
	}
	out := fs.String("o", "-", "matrix output path")
	omitted := fs.String("omitted", "", "write omitted barcodes to this path")
	fs.IntVar(&r.cfg.Tabulate.MinTotal, "min-total", r.cfg.Tabulate.MinTotal, "omit barcodes with fewer total reads")
	fs.IntVar(&r.cfg.Tabulate.MinSamples, "min-samples", r.cfg.Tabulate.MinSamples, "omit barcodes present in fewer samples")
	fs.IntVar(&r.cfg.Tabulate.MinInSample, "min-in-sample", r.cfg.Tabulate.MinInSample, "omit barcodes whose best sample has fewer reads")
	rest, err := r.parse(fs, args, 1, -1)
	if err != nil {
		return err
	}

	samples := make([]counts.Sample, 0, len(rest))
	for _, path := range rest {
		if err := r.phase("reading", zap.String("input", path)); err != nil {
			return err
		}
		c, err := counts.ReadFile(path)
		if err != nil {
			return err
		}
		samples = append(samples, counts.Sample{Name: path, Counts: c})
	}

	if err := r.phase("writing", zap.Int("samples", len(samples))); err != nil {
		return err
	}
	o, err := r.create(*out)
	if err != nil {
		return err
	}
	var om *output
	if *omitted != "" {
		if om, err = r.create(*omitted); err != nil {
			closeAll(o)
			return err
		}
	}
	if err := counts.Tabulate(o, writerOrNil(om), samples, r.cfg.Tabulate); err != nil {
		closeAll(o, om)
		return err
	}
	return closeAll(o, om)
}

// traversal parses an already validated traversal name.
func traversal(s string) nb.Traversal {
	t, _ := nb.ParseTraversal(s)
	return t
}
