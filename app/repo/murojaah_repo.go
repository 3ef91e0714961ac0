package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MurojaahRepository memanggil layanan prasyarat eksternal kampus.
type MurojaahRepository interface {
	CheckMurojaah(ctx context.Context, nim string) (bool, error)
}

type MurojaahRepo struct {
	baseURL string
	client  *http.Client
}

func NewMurojaahRepo(baseURL string) *MurojaahRepo {
	return &MurojaahRepo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type murojaahResponse struct {
	Response bool `json:"response"`
	Data     struct {
		IsDone bool `json:"is_done"`
	} `json:"data"`
}

func (r *MurojaahRepo) CheckMurojaah(ctx context.Context, nim string) (bool, error) {
	url := fmt.Sprintf("%s/mahasiswa/check-murojaah/%s?syarat=KP.SEMKP", r.baseURL, nim)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var body murojaahResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}

	if !body.Response {
		return false, nil
	}
	return body.Data.IsDone, nil
}
