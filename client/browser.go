package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

const axeRunExpression = `axe.run()`

type BrowserClient interface {
	// RunEngine opens pageUrl in a fresh headless browser, injects engineScript
	// into the page and returns the raw JSON produced by the engine entry point.
	RunEngine(ctx context.Context, pageUrl string, engineScript string) (json.RawMessage, error)
	// CaptureElement renders htmlDoc and returns a PNG screenshot of the element
	// matching the CSS selector.
	CaptureElement(ctx context.Context, htmlDoc string, selector string) ([]byte, error)
}

type BrowserOptions struct {
	ChromePath        string
	NavigationTimeout time.Duration
}

func NewBrowserClient(opts BrowserOptions) BrowserClient {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30 * time.Second
	}
	return &chromeBrowserClientImpl{opts: opts}
}

type chromeBrowserClientImpl struct {
	opts BrowserOptions
	// onStart observes every launched browser process; used by tests
	onStart func(process *os.Process)
}

// startBrowser launches a dedicated browser process. The returned release
// function closes the tab and kills the process; it must be called on every path.
func (c *chromeBrowserClientImpl) startBrowser(ctx context.Context) (context.Context, context.CancelFunc, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if c.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Debugf), chromedp.WithErrorf(log.Debugf))
	release := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// the first Run starts the process; later timeouts are applied to child
	// contexts so that they do not tear the browser down mid-scan
	if err := chromedp.Run(browserCtx); err != nil {
		release()
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}
	if c.onStart != nil {
		c.onStart(chromedp.FromContext(browserCtx).Browser.Process())
	}
	return browserCtx, release, nil
}

func (c *chromeBrowserClientImpl) RunEngine(ctx context.Context, pageUrl string, engineScript string) (json.RawMessage, error) {
	browserCtx, release, err := c.startBrowser(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	idle := newNetworkIdleWaiter()
	chromedp.ListenTarget(browserCtx, idle.handleEvent)

	navCtx, cancelNav := context.WithTimeout(browserCtx, c.opts.NavigationTimeout)
	defer cancelNav()
	err = chromedp.Run(navCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, loaderID, errorText, err := page.Navigate(pageUrl).Do(ctx)
			if err != nil {
				return err
			}
			if errorText != "" {
				return fmt.Errorf("page load error %s", errorText)
			}
			if loaderID == "" {
				// same-document navigation, nothing new to load
				return nil
			}
			return idle.wait(ctx, loaderID)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("navigation to %s failed: %w", pageUrl, err)
	}
	log.Debugf("Page %s is loaded and network is almost idle", pageUrl)

	var result json.RawMessage
	err = chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, exception, err := runtime.Evaluate(engineScript).Do(ctx)
			if err != nil {
				return err
			}
			if exception != nil {
				return fmt.Errorf("engine script injection failed: %s", exception.Text)
			}
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			obj, exception, err := runtime.Evaluate(axeRunExpression).
				WithAwaitPromise(true).
				WithReturnByValue(true).
				Do(ctx)
			if err != nil {
				return err
			}
			if exception != nil {
				return fmt.Errorf("engine run failed: %s", exception.Text)
			}
			if obj == nil || len(obj.Value) == 0 {
				return fmt.Errorf("engine run returned no result")
			}
			result = json.RawMessage(obj.Value)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *chromeBrowserClientImpl) CaptureElement(ctx context.Context, htmlDoc string, selector string) ([]byte, error) {
	browserCtx, release, err := c.startBrowser(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	captureCtx, cancel := context.WithTimeout(browserCtx, c.opts.NavigationTimeout)
	defer cancel()

	dataUrl := "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))

	var nodeCount int
	var image []byte
	err = chromedp.Run(captureCtx,
		chromedp.Navigate(dataUrl),
		chromedp.Evaluate(fmt.Sprintf("document.querySelectorAll(%q).length", selector), &nodeCount),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if nodeCount == 0 {
				return fmt.Errorf("element %s is not present", selector)
			}
			return chromedp.Screenshot(selector, &image, chromedp.ByQuery, chromedp.NodeVisible).Do(ctx)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", selector, err)
	}
	return image, nil
}
