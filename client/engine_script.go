package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

const engineScriptCacheKey = "axe-core"

// EngineScriptProvider supplies the accessibility engine source that is
// injected into every scanned page.
type EngineScriptProvider interface {
	GetScript(ctx context.Context) (string, error)
}

// NewEngineScriptProvider reads the script from scriptPath when it is set and
// downloads it from scriptUrl otherwise. Loaded sources are kept for ttl.
func NewEngineScriptProvider(scriptPath string, scriptUrl string, ttl time.Duration) EngineScriptProvider {
	cache := libcache.LRU.New(1)
	if ttl > 0 {
		cache.SetTTL(ttl)
	}
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})

	cl := http.Client{Timeout: time.Second * 60}
	return &engineScriptProviderImpl{
		scriptPath: scriptPath,
		scriptUrl:  scriptUrl,
		cache:      cache,
		client:     resty.NewWithClient(&cl),
	}
}

type engineScriptProviderImpl struct {
	mutex      sync.Mutex
	scriptPath string
	scriptUrl  string
	cache      libcache.Cache
	client     *resty.Client
}

func (e *engineScriptProviderImpl) GetScript(ctx context.Context) (string, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if cached, ok := e.cache.Load(engineScriptCacheKey); ok {
		return cached.(string), nil
	}

	var script string
	var err error
	if e.scriptPath != "" {
		script, err = e.readFile()
	} else {
		script, err = e.download(ctx)
	}
	if err != nil {
		return "", err
	}
	if script == "" {
		return "", fmt.Errorf("engine script is empty")
	}
	e.cache.Store(engineScriptCacheKey, script)
	return script, nil
}

func (e *engineScriptProviderImpl) readFile() (string, error) {
	data, err := os.ReadFile(e.scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read engine script %s: %w", e.scriptPath, err)
	}
	log.Infof("Loaded accessibility engine script from %s (%d bytes)", e.scriptPath, len(data))
	return string(data), nil
}

func (e *engineScriptProviderImpl) download(ctx context.Context) (string, error) {
	if e.scriptUrl == "" {
		return "", fmt.Errorf("neither engine script path nor url is configured")
	}
	resp, err := e.client.R().SetContext(ctx).Get(e.scriptUrl)
	if err != nil {
		return "", fmt.Errorf("failed to download engine script from %s: %s", e.scriptUrl, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("failed to download engine script from %s: status code %d", e.scriptUrl, resp.StatusCode())
	}
	log.Infof("Downloaded accessibility engine script from %s (%d bytes)", e.scriptUrl, len(resp.Body()))
	return string(resp.Body()), nil
}
