package utils

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"os"

	"golang.org/x/exp/constraints"
)

var randLetter = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// RandString returns n length random string [a-zA-Z0-9]+
func RandString(n int) string {
	s := make([]byte, n)
	for i := range s {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(randLetter))))
		if err != nil {
			panic(err)
		}
		s[i] = randLetter[num.Int64()]
	}

	return string(s)
}

// MD5 returns md5 hash of str.
func MD5(str string) string {
	h := md5.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

// FileExist returns whether file in path exist.
func FileExist(path string) bool {
	var exist = true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		exist = false
	}
	return exist
}

// MustMarshal marshals v to string, panic if error.
func MustMarshal(v any) string {
	ret, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(ret)
}

// Min returns the smaller one in a and b.
func Min[T constraints.Ordered](a T, b T) T {
	if a > b {
		return b
	}
	return a
}

// Max returns the bigger one in a and b.
func Max[T constraints.Ordered](a T, b T) T {
	if a > b {
		return a
	}
	return b
}

// SliceUnique deduplicates slice.
func SliceUnique[T comparable](s []T) (ret []T) {
	keys := make(map[T]bool)
	for _, item := range s {
		if _, value := keys[item]; !value {
			keys[item] = true
			ret = append(ret, item)
		}
	}
	return
}

// MapKeyToSlice converts map key to slice.
func MapKeyToSlice[K comparable, V any](s map[K]V) (ret []K) {
	for k := range s {
		ret = append(ret, k)
	}
	return
}

// MapContains checks whether map contains a key.
func MapContains[K comparable, V any](m map[K]V, v K) bool {
	_, ok := m[v]
	return ok
}
