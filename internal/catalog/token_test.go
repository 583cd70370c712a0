/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "unit-test-secret"
	tok, err := signToken(secret, "store-17", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	sub, err := verifyToken(secret, tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "store-17" {
		t.Fatalf("subject = %q, want store-17", sub)
	}
}

func TestTokenExpired(t *testing.T) {
	secret := "unit-test-secret"
	tok, err := signToken(secret, "store-17", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifyToken(secret, tok); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := signToken("secret-a", "store-17", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifyToken("secret-b", tok); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestTokenTampered(t *testing.T) {
	secret := "unit-test-secret"
	tok, err := signToken(secret, "store-17", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 2 {
		t.Fatalf("unexpected token shape %q", tok)
	}
	for _, bad := range []string{
		"not-a-token",
		parts[0],
		parts[0] + "." + parts[1] + "x",
		"!!" + "." + parts[1],
	} {
		if _, err := verifyToken(secret, bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
