package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/pkg/httputil"
	"github.com/wonny/sectorpulse/pkg/logger"
)

// boardHrefPattern matches sector board links such as /bk/90.BK0475.html.
var boardHrefPattern = regexp.MustCompile(`90\.(BK\d+)`)

// SectorDirectory resolves sector names to EastMoney board codes. The board
// list page is scraped once and held for the process lifetime.
// ⭐ SSOT: 섹터명 -> 보드코드 매핑은 여기서만
type SectorDirectory struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	listURL    string

	mu     sync.Mutex
	boards map[string]string // sector name -> board code
}

// NewSectorDirectory creates a directory backed by the given board list page.
func NewSectorDirectory(listURL string, httpClient *httputil.Client, log *logger.Logger) *SectorDirectory {
	return &SectorDirectory{
		httpClient: httpClient,
		logger:     log.WithField("module", "sectors"),
		listURL:    listURL,
	}
}

// BoardCode returns the board code for a sector name. Unknown sectors map to
// contracts.ErrDataUnavailable so batch callers absorb them per pair.
func (d *SectorDirectory) BoardCode(ctx context.Context, sector string) (string, error) {
	boards, err := d.load(ctx)
	if err != nil {
		return "", err
	}
	code, ok := boards[sector]
	if !ok {
		return "", fmt.Errorf("%w: unknown sector %q", contracts.ErrDataUnavailable, sector)
	}
	return code, nil
}

// Sectors returns every known sector name, sorted.
func (d *SectorDirectory) Sectors(ctx context.Context) ([]string, error) {
	boards, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(boards))
	for name := range boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *SectorDirectory) load(ctx context.Context) (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.boards != nil {
		return d.boards, nil
	}

	resp, err := d.httpClient.Get(ctx, d.listURL)
	if err != nil {
		return nil, fmt.Errorf("%w: board list fetch: %v", contracts.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: board list status %d", contracts.ErrDataUnavailable, resp.StatusCode)
	}

	boards, err := parseBoardList(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrDataUnavailable, err)
	}
	if len(boards) == 0 {
		return nil, fmt.Errorf("%w: board list page had no sector links", contracts.ErrDataUnavailable)
	}

	d.logger.WithField("count", len(boards)).Info("Loaded sector board list")
	d.boards = boards
	return d.boards, nil
}

// parseBoardList extracts sector name and board code pairs from anchor tags
// on the board list page.
func parseBoardList(resp *http.Response) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse board list HTML: %v", err)
	}

	boards := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		match := boardHrefPattern.FindStringSubmatch(href)
		if match == nil {
			return
		}
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}
		boards[name] = match[1]
	})
	return boards, nil
}
