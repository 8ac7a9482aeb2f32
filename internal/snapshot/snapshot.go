// Package snapshot captures the live view in headless Chrome.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultSettle  = 3 * time.Second
	DefaultQuality = 90
	// nodeSelector matches a drawn node in the painter page.
	nodeSelector = "#canvas g.node"
)

type Options struct {
	// URL of the painter page, query parameters select the graph.
	URL     string
	Width   int
	Height  int
	Timeout time.Duration
	// Settle is how long to let the layout run after the first node is drawn.
	Settle  time.Duration
	Quality int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

type Result struct {
	PNG             []byte
	HTML            string
	Counts          Counts
	DownloadedBytes int64
	Duration        time.Duration
}

var ErrNoURL = errors.New("snapshot: no url")

// Capture opens the page, waits for the graph to draw and settle, and takes a full
// page screenshot.
func Capture(ctx context.Context, opts Options) (Result, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return Result{}, ErrNoURL
	}
	opts = opts.withDefaults()
	startTime := time.Now()

	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx,
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.WindowSize(opts.Width, opts.Height))...,
	)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var (
		res        Result
		downloaded atomic.Int64
	)
	countBytesAction := func(ctx context.Context) error {
		chromedp.ListenTarget(ctx, func(ev interface{}) {
			switch ev := ev.(type) {
			case *network.EventLoadingFinished:
				downloaded.Add(int64(ev.EncodedDataLength))
			}
		})
		return nil
	}

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(countBytesAction),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(nodeSelector, chromedp.ByQuery),
		chromedp.Sleep(opts.Settle),
		chromedp.FullScreenshot(&res.PNG, opts.Quality),
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return err
			}
			res.HTML, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return Result{}, fmt.Errorf("capture %s: %w", opts.URL, err)
	}

	res.Counts, err = Inspect(strings.NewReader(res.HTML))
	if err != nil {
		return Result{}, fmt.Errorf("inspect %s: %w", opts.URL, err)
	}
	res.DownloadedBytes = downloaded.Load()
	res.Duration = time.Since(startTime)
	return res, nil
}
