package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mailmem "pet-adoption-backend/internal/adapters/mail/memory"
	"pet-adoption-backend/internal/router"
)

func TestHTTP_EndToEnd_ReminderFlow(t *testing.T) {
	mailer := mailmem.New(nil)
	h, _ := router.New(router.Options{AuthVerifier: nil, Mailer: mailer})
	ts := httptest.NewServer(h)
	defer ts.Close()

	ownerID := "owner-1"
	adopterID := "adopter-1"

	// 1) Owner publica a Bella. La segunda entrada "rabies" es duplicada
	//    (mismo tipo case-insensitive) y debe descartarse al escribir.
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Bella",
		"species": "dog",
		"breed":   "mixed",
		"sex":     "female",
		"vaccinations": []map[string]string{
			{"vaccine_type": "Rabies", "date": "2024-03-10"},
			{"vaccine_type": " rabies ", "date": "2023-01-01"},
			{"vaccine_type": "Bordetella", "date": "2024-03-10"},
		},
	})

	// 2) Sin header de auth no hay perfil
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without auth, got %d", st)
		}
	}

	// 3) El perfil guardado tiene el historial deduplicado
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
		}
		var resp struct {
			Vaccinations []struct {
				VaccineType string `json:"vaccine_type"`
				Date        string `json:"date"`
			} `json:"vaccinations"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Vaccinations) != 2 {
			t.Fatalf("expected 2 vaccinations after dedup, got %+v", resp.Vaccinations)
		}
		if resp.Vaccinations[0].VaccineType != "Rabies" || resp.Vaccinations[0].Date != "2024-03-10" {
			t.Fatalf("expected first-seen Rabies entry to win, got %+v", resp.Vaccinations[0])
		}
	}

	// 4) Adopter solicita, un intruso no puede decidir, el owner acepta
	adoptionID := requestAdoption(t, ts.URL, adopterID, petID, "adopter@example.com")
	{
		st, _ := doReq(t, ts.URL, "POST", "/adoptions/"+adoptionID+"/accept", "intruder", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 accept by intruder, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions/"+adoptionID+"/accept", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept by owner, got %d body=%s", st, string(body))
		}
	}

	// 5) Owner registra la venta; otro usuario no puede
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/purchases", adopterID, map[string]any{
			"buyer_email": "buyer@example.com",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 record purchase by non-owner, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/purchases", ownerID, map[string]any{
			"buyer_user_id": "buyer-1",
			"buyer_email":   "buyer@example.com",
			"amount_cents":  15000,
			"currency":      "usd",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 record purchase, got %d body=%s", st, string(body))
		}
	}

	// 6) Pase manual el día anterior al vencimiento de Rabies
	//    (2024-03-10 + 365 = 2025-03-10): adopter y buyer reciben mail.
	{
		st, body := doReq(t, ts.URL, "POST", "/reminders/run?as_of=2025-03-09", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 run pass, got %d body=%s", st, string(body))
		}

		sent := mailer.Sent()
		if len(sent) != 2 {
			t.Fatalf("expected 2 reminder mails, got %d: %+v", len(sent), sent)
		}
		recipients := map[string]bool{}
		for _, m := range sent {
			recipients[m.To] = true
			if m.Subject != "Pet Vaccination Reminder" {
				t.Fatalf("unexpected subject %q", m.Subject)
			}
		}
		if !recipients["adopter@example.com"] || !recipients["buyer@example.com"] {
			t.Fatalf("expected adopter and buyer notified, got %+v", recipients)
		}
	}

	// 7) Un día fuera de ventana no manda nada nuevo
	{
		st, _ := doReq(t, ts.URL, "POST", "/reminders/run?as_of=2025-03-07", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 run pass, got %d", st)
		}
		if sent := mailer.Sent(); len(sent) != 2 {
			t.Fatalf("expected no additional mails, got %d", len(sent))
		}
	}

	// 8) as_of inválido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/reminders/run?as_of=09-03-2025", ownerID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad as_of, got %d", st)
		}
	}
}

func TestHTTP_ReplaceVaccinations_OnlyLister(t *testing.T) {
	h, _ := router.New(router.Options{AuthVerifier: nil, Mailer: mailmem.New(nil)})
	ts := httptest.NewServer(h)
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{
		"name":    "Milo",
		"species": "cat",
	})

	payload := map[string]any{
		"vaccinations": []map[string]string{
			{"vaccine_type": "Rabies", "date": "2025-01-01"},
		},
	}

	st, _ := doReq(t, ts.URL, "PUT", "/pets/"+petID+"/vaccinations", "someone-else", payload)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 replace by non-lister, got %d", st)
	}

	st, body := doReq(t, ts.URL, "PUT", "/pets/"+petID+"/vaccinations", "owner-1", payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 replace by lister, got %d body=%s", st, string(body))
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func requestAdoption(t *testing.T, baseURL, adopterID, petID, email string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/adoptions", adopterID, map[string]any{
		"adopter_email": email,
		"message":       "me encanta Bella",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 request adoption, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("request adoption: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
