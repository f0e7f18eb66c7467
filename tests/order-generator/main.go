package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CreateOrder struct {
	Items []Item `json:"orderItems"`
}

type Order struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	UserID      string  `json:"userId"`
}

var users = []string{"alice", "bob", "carol", "dave"}

func generateRandomOrder(maxProductID int) CreateOrder {
	items := make([]Item, 1+rand.Intn(3))
	for i := range items {
		items[i] = Item{
			ProductID: int64(1 + rand.Intn(maxProductID)),
			Quantity:  1 + rand.Intn(3),
		}
	}
	return CreateOrder{Items: items}
}

func mintToken(secret, user string, admin bool) string {
	roles := []string{"USER"}
	if admin {
		roles = append(roles, "ADMIN")
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                user,
		"preferred_username": user,
		"realm_access":       map[string]any{"roles": roles},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func request(ctx context.Context, client *http.Client, method, url, token string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	return res.StatusCode, data, err
}

func main() {
	addr := flag.String("addr", "http://localhost:8080/api/orders", "orders endpoint")
	secret := flag.String("secret", "secret", "HMAC secret, must match AUTH_JWT_SECRET")
	interval := flag.Duration("interval", 2*time.Second, "delay between orders")
	products := flag.Int("products", 10, "max product id")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	client := &http.Client{Timeout: 5 * time.Second}
	adminToken := mintToken(*secret, "admin", true)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			user := users[rand.Intn(len(users))]
			token := mintToken(*secret, user, false)

			status, body, err := request(ctx, client, http.MethodPost, *addr, token, generateRandomOrder(*products))
			if err != nil {
				log.Println("create failed:", err)
				continue
			}
			if status != http.StatusCreated {
				log.Printf("create rejected: %d %s", status, body)
				continue
			}

			var order Order
			if err := json.Unmarshal(body, &order); err != nil {
				log.Println("bad response:", err)
				continue
			}
			log.Printf("order %d created for %s, total %.2f", order.ID, order.UserID, order.TotalAmount)

			// чужой пользователь должен получить 403, администратор 200
			other := users[(rand.Intn(len(users)-1)+1+indexOf(user))%len(users)]
			orderURL := fmt.Sprintf("%s/%d", *addr, order.ID)

			status, _, err = request(ctx, client, http.MethodGet, orderURL, mintToken(*secret, other, false), nil)
			if err == nil && status != http.StatusForbidden {
				log.Printf("order %d visible to %s: status %d", order.ID, other, status)
			}
			status, _, err = request(ctx, client, http.MethodGet, orderURL, adminToken, nil)
			if err == nil && status != http.StatusOK {
				log.Printf("order %d not visible to admin: status %d", order.ID, status)
			}
		case <-ctx.Done():
			return
		}
	}
}

func indexOf(user string) int {
	for i, u := range users {
		if u == user {
			return i
		}
	}
	return 0
}
