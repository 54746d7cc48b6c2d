package assetstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/adaudit/campaign-audit-api/internal/config"
	"github.com/sirupsen/logrus"
)

// Storer persiste criativos referenciados pelos anúncios em armazenamento
// gerenciado, devolvendo a URL gerenciada resultante.
type Storer interface {
	Store(sourceURL, accountID string) (string, error)
	IsManaged(assetURL string) bool
}

type Client struct {
	cfg        config.AssetStore
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg.AssetStore,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// IsManaged verifica se a URL já aponta para o armazenamento gerenciado.
// Usado para pular o download em re-sincronizações.
func (c *Client) IsManaged(assetURL string) bool {
	return c.cfg.PublicBaseURL != "" && strings.HasPrefix(assetURL, c.cfg.PublicBaseURL)
}

// Store baixa o asset da URL de origem e o envia ao serviço de
// armazenamento, retornando a URL gerenciada.
func (c *Client) Store(sourceURL, accountID string) (string, error) {
	data, contentType, err := c.download(sourceURL)
	if err != nil {
		return "", fmt.Errorf("erro ao baixar asset de origem: %w", err)
	}

	managedURL, err := c.upload(data, contentType, accountID)
	if err != nil {
		return "", fmt.Errorf("erro ao enviar asset ao armazenamento: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"bytes":      len(data),
	}).Debug("Asset armazenado com sucesso")

	return managedURL, nil
}

func (c *Client) download(sourceURL string) ([]byte, string, error) {
	resp, err := c.httpClient.Get(sourceURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status inesperado ao baixar asset: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) upload(data []byte, contentType, accountID string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "creative")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.WriteField("account_id", accountID); err != nil {
		return "", err
	}
	if contentType != "" {
		if err := writer.WriteField("content_type", contentType); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.URL+"/v1/assets", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status inesperado do armazenamento: %d, corpo: %s", resp.StatusCode, body)
	}

	var response struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}

	if response.URL == "" {
		return "", fmt.Errorf("armazenamento não retornou URL gerenciada")
	}

	return response.URL, nil
}
