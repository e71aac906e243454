package test

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/polkiloo/bakery/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random alphanumeric string of length within [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomCart builds a cart of one to three items with whole-number prices.
func RandomCart() model.Cart {
	cart := make(model.Cart, 1+randomIntn(3))
	for i := range cart {
		cart[i] = model.LineItem{
			Name:     RandomASCIIString(4, 12),
			Quantity: 1 + randomIntn(5),
			Price:    float64(10 + randomIntn(500)),
		}
	}
	return cart
}

// RandomOrderForm returns a valid checkout form whose total matches its cart.
func RandomOrderForm() model.OrderForm {
	cart := RandomCart()
	raw, err := json.Marshal(cart)
	if err != nil {
		panic(err)
	}
	return model.OrderForm{
		FullName:      RandomASCIIString(3, 16),
		Email:         RandomASCIIString(3, 10) + "@example.com",
		Phone:         strconv.Itoa(1000000 + randomIntn(9000000)),
		Address:       RandomASCIIString(8, 24),
		City:          RandomASCIIString(4, 12),
		Pincode:       strconv.Itoa(100000 + randomIntn(900000)),
		PaymentMethod: "cod",
		Cart:          string(raw),
		Total:         cart.Subtotal().String(),
	}
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
