package ingesting

import (
	"fmt"
	"strings"
	"time"

	"github.com/adaudit/campaign-audit-api/internal/domain"
	"github.com/adaudit/campaign-audit-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Colunas do export em português, indexadas pelo cabeçalho e não pela posição.
const (
	columnDate                = "dia"
	columnAccount             = "conta"
	columnCampaign            = "campanha"
	columnAdGroup             = "grupo_de_anuncios"
	columnAd                  = "anuncio"
	columnImpressions         = "impressoes"
	columnClicks              = "cliques"
	columnCPM                 = "cpm"
	columnCPC                 = "cpc"
	columnConversations       = "conversas_iniciadas"
	columnCostPerConversation = "custo_por_conversa"
	columnSpend               = "valor_gasto"
	columnAdURL               = "url_anuncio"
)

// transformRecords converte os registros crus do CSV em linhas de métricas.
// A primeira linha é o cabeçalho. Linhas sem os campos obrigatórios ou que
// não geram id entram na lista de falhas e não interrompem as demais.
func transformRecords(records [][]string, source, syncBatchID string) ([]*domain.MetricRow, []string) {
	if len(records) < 2 {
		return nil, nil
	}

	index := headerIndex(records[0])
	now := time.Now()

	rows := make([]*domain.MetricRow, 0, len(records)-1)
	var failures []string

	for i, record := range records[1:] {
		lineNumber := i + 2 // linha do arquivo, contando o cabeçalho

		id, err := utils.GenerateID()
		if err != nil {
			failures = append(failures, fmt.Sprintf("linha %d: erro ao gerar id: %v", lineNumber, err))
			continue
		}

		rawDate := field(record, index, columnDate)

		row := &domain.MetricRow{
			ID:                  id,
			Date:                parseFeedDate(rawDate, now),
			AccountName:         field(record, index, columnAccount),
			CampaignName:        field(record, index, columnCampaign),
			AdGroupName:         field(record, index, columnAdGroup),
			AdName:              field(record, index, columnAd),
			Impressions:         utils.ParseIntLoose(field(record, index, columnImpressions)),
			Clicks:              utils.ParseIntLoose(field(record, index, columnClicks)),
			CPM:                 utils.NormalizeCurrencyBR(field(record, index, columnCPM)),
			CPC:                 utils.NormalizeCurrencyBR(field(record, index, columnCPC)),
			Conversations:       utils.ParseIntLoose(field(record, index, columnConversations)),
			CostPerConversation: utils.NormalizeCurrencyBR(field(record, index, columnCostPerConversation)),
			Spend:               utils.NormalizeCurrencyBR(field(record, index, columnSpend)),
			Source:              source,
			SyncBatchID:         syncBatchID,
			CreatedAt:           now,
		}

		if adURL := field(record, index, columnAdURL); adURL != "" {
			row.AdURL = &adURL
		}

		if rawDate == "" || !row.HasMandatoryFields() {
			failures = append(failures, fmt.Sprintf(
				"linha %d: campos obrigatórios ausentes (dia, conta, campanha)", lineNumber,
			))
			continue
		}

		rows = append(rows, row)
	}

	if len(failures) > 0 {
		logrus.WithFields(logrus.Fields{
			"total":  len(records) - 1,
			"failed": len(failures),
		}).Warn("Linhas do feed rejeitadas na transformação")
	}

	return rows, failures
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseFeedDate aceita os dois formatos vistos nos exports (dd/mm/aaaa e
// aaaa-mm-dd). Sem data válida, a linha assume o horário da ingestão.
func parseFeedDate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}

	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}

	return fallback
}
