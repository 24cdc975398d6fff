package e2e_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite

	httpClient *http.Client
	appHost    string
	appPort    string
}

func (s *E2ETestSuite) SetupSuite() {
	s.appHost = getEnvOrDefault("APP_HOST", "localhost")
	s.appPort = getEnvOrDefault("APP_PORT", "8080")

	s.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}

	s.waitForApp()
}

func (s *E2ETestSuite) waitForApp() {
	const maxRetries = 30
	const retryDelay = 2 * time.Second
	healthURL := s.url("/healthz")

	for i := range maxRetries {
		req, err := http.NewRequestWithContext(context.Background(), "GET", healthURL, nil)
		if err != nil {
			s.T().Logf("Failed to create health check request: %v", err)
			time.Sleep(retryDelay)
			continue
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.T().Logf("Health check failed (attempt %d/%d): %v", i+1, maxRetries, err)
			time.Sleep(retryDelay)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			s.T().Log("App is healthy")
			return
		}
		s.T().Logf("App health check status %d (attempt %d/%d)", resp.StatusCode, i+1, maxRetries)
		time.Sleep(retryDelay)
	}
	s.T().Fatalf("App did not become healthy after %d attempts", maxRetries)
}

func (s *E2ETestSuite) url(path string) string {
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(s.appHost, s.appPort), path)
}

// postForm submits a form the way a browser would and follows the redirect
// chain; the returned body is the final rendered page.
func (s *E2ETestSuite) postForm(path string, form url.Values) (string, string) {
	resp, err := s.httpClient.PostForm(s.url(path), form)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return string(body), resp.Request.URL.Path
}

func (s *E2ETestSuite) getPage(path string) string {
	resp, err := s.httpClient.Get(s.url(path))
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return string(body)
}

func (s *E2ETestSuite) TestItemLifecycleFlow() {
	categoryName := "E2E " + gofakeit.ProductCategory() + " " + gofakeit.LetterN(6)
	itemName := "E2E " + gofakeit.ProductName() + " " + gofakeit.LetterN(6)

	// Create a category; the browser lands on its detail page.
	body, categoryPath := s.postForm("/inventory/category/create", url.Values{
		"name": {categoryName},
	})
	require.Contains(s.T(), body, categoryName)
	require.True(s.T(), strings.HasPrefix(categoryPath, "/inventory/category/"))

	categoryID := strings.TrimPrefix(categoryPath, "/inventory/category/")

	// Create an item referencing it; the browser lands on the item detail page.
	body, itemPath := s.postForm("/inventory/item/create", url.Values{
		"name":        {itemName},
		"description": {"Created by the end-to-end flow"},
		"price":       {"$19.99"},
		"stock":       {"3"},
		"category":    {categoryID},
	})
	require.Contains(s.T(), body, itemName)
	require.Contains(s.T(), body, "$19.99")
	require.Contains(s.T(), body, categoryName)
	require.True(s.T(), strings.HasPrefix(itemPath, "/inventory/item/"))

	// The item shows up in the list and on the category detail page.
	require.Contains(s.T(), s.getPage("/inventory/items"), itemName)
	require.Contains(s.T(), s.getPage(categoryPath), itemName)

	// The category cannot be deleted while the item references it; the
	// confirmation page is shown again with the blocking item.
	itemID := strings.TrimPrefix(itemPath, "/inventory/item/")
	body, _ = s.postForm(categoryPath+"/delete", url.Values{
		"categoryid": {categoryID},
	})
	require.Contains(s.T(), body, itemName)

	// Delete the item, then the category goes away cleanly.
	body, _ = s.postForm(itemPath+"/delete", url.Values{
		"itemid": {itemID},
	})
	require.NotContains(s.T(), body, itemName)

	body, _ = s.postForm(categoryPath+"/delete", url.Values{
		"categoryid": {categoryID},
	})
	require.NotContains(s.T(), body, categoryName)
}

func (s *E2ETestSuite) TestInvalidSubmissionRedisplaysForm() {
	body, path := s.postForm("/inventory/item/create", url.Values{
		"name":        {""},
		"description": {"Valid description"},
		"price":       {"free"},
		"stock":       {"lots"},
	})

	require.Equal(s.T(), "/inventory/item/create", path)
	require.Contains(s.T(), body, "Name must not be empty.")
	require.Contains(s.T(), body, "Price must be a dollar amount such as $9.99.")
	require.Contains(s.T(), body, "Stock must be a whole number.")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestE2E(t *testing.T) {
	if os.Getenv("E2E_TEST") == "" {
		t.Skip("Skipping E2E test; set E2E_TEST to run.")
	}
	suite.Run(t, new(E2ETestSuite))
}
