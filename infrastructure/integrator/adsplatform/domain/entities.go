package adsdomain

// Cursors de paginação da plataforma.
type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging carrega os cursores e o link absoluto da próxima página. A
// paginação segue o campo Next até ele vir vazio.
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// Account é o objeto de conta retornado pela plataforma.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Campaign é a campanha no formato nativo da plataforma. DailyBudget chega
// em unidades menores da moeda (centavos).
type Campaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	DailyBudget string `json:"daily_budget"`
	UpdatedTime string `json:"updated_time"`
}

// AdGroup é o grupo de anúncios no formato nativo, com o id externo da
// campanha mãe.
type AdGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CampaignID string `json:"campaign_id"`
}

// Creative descreve o criativo de um anúncio. A imagem pode vir como URL
// direta, como referência a um story ou como hash opaco (criativos
// compostos dinamicamente).
type Creative struct {
	ID            string `json:"id"`
	ImageURL      string `json:"image_url"`
	ThumbnailURL  string `json:"thumbnail_url"`
	ImageHash     string `json:"image_hash"`
	ObjectStoryID string `json:"object_story_id"`
}

// Ad é o anúncio no formato nativo, com o id externo do grupo mãe.
type Ad struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	AdGroupID string    `json:"adset_id"`
	Creative  *Creative `json:"creative,omitempty"`
}

// Insights são as métricas de performance de uma entidade. A plataforma
// entrega números como strings.
type Insights struct {
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
}

// Story é o objeto de publicação vinculado a um criativo, fonte secundária
// de imagem.
type Story struct {
	ID          string `json:"id"`
	FullPicture string `json:"full_picture"`
	PictureURL  string `json:"picture"`
}

// ImageRef é a resolução de um hash de imagem para sua URL.
type ImageRef struct {
	Hash string `json:"hash"`
	URL  string `json:"url"`
}
