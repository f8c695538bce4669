package storage

import "crypto/rand"

// referralAlphabet has exactly 64 characters so a random byte masks cleanly
// to an index without modulo bias.
const referralAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReferralCodeLength is the length of every generated referral code.
const ReferralCodeLength = 8

func newReferralCode() string {
	buf := make([]byte, ReferralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("referral code entropy: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[b&63]
	}
	return string(buf)
}
