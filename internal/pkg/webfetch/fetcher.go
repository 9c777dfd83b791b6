package webfetch

import (
	"Huntboard/internal/api/config"
	"context"
	"crypto/tls"
	"fmt"
	log "log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
)

const maxTextLen = 6000

// Page 抓取结果
type Page struct {
	Title string
	Text  string
}

// Fetcher 职位页面抓取器，静态抓取失败时降级到无头浏览器渲染
type Fetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*Page, error)
	Close()
}

type fetcherImpl struct {
	httpClient *resty.Client
	browserCtx context.Context
	cancel     context.CancelFunc
}

// NewFetcher 在单例初始化时启动浏览器引擎
func NewFetcher() Fetcher {
	cfg := config.Cfg.Importer

	ua := cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(ua),
	)
	if cfg.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.Proxy))
	}

	allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		panic(fmt.Sprintf("浏览器引擎启动失败，请检查是否安装 Chrome: %v", err))
	}

	client := resty.New().
		SetTimeout(20*time.Second).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}).
		SetHeader("User-Agent", ua)
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}

	return &fetcherImpl{
		httpClient: client,
		browserCtx: browserCtx,
		cancel:     cancel,
	}
}

// FetchPage 抓取并提取职位页面正文
func (s *fetcherImpl) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	resp, err := s.httpClient.R().SetContext(ctx).Get(pageURL)
	html := ""
	if err == nil {
		html = resp.String()
	}

	// 静态内容过短时大概率是前端渲染页，降级到浏览器
	lowHtml := strings.ToLower(html)
	if strings.Contains(lowHtml, "loading") || len(html) < 4000 {
		tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
		defer cancelTab()

		var timeoutCancel context.CancelFunc
		tabCtx, timeoutCancel = context.WithTimeout(tabCtx, 20*time.Second)
		defer timeoutCancel()

		var renderHtml string
		err = chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady(`body`),
			chromedp.OuterHTML("html", &renderHtml),
		)
		if err == nil {
			html = renderHtml
		}
	}

	if html == "" {
		return nil, fmt.Errorf("页面抓取失败: %s", pageURL)
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(html), parsedURL)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		// readability 提取失败时退回到裸文本
		return s.fallbackExtract(html)
	}

	text := regexp.MustCompile(`\s+`).ReplaceAllString(article.TextContent, " ")
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}

	log.InfoContext(ctx, "FetchPage", "url", pageURL, "title", article.Title, "len", len(text))
	return &Page{Title: article.Title, Text: text}, nil
}

func (s *fetcherImpl) fallbackExtract(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	doc.Find("script,style,noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := regexp.MustCompile(`\s+`).ReplaceAllString(doc.Find("body").Text(), " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("无法从页面提取有效正文")
	}
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}
	return &Page{Title: title, Text: text}, nil
}

func (s *fetcherImpl) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}
