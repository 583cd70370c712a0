/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	if r.Contains(Pt{9, 20}) || r.Contains(Pt{10, 71}) {
		t.Fatalf("expected outside points to miss")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestRectUnionAndCenter(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(5, 5, 20, 2))
	if u.X != 0 || u.Y != 0 || u.W != 25 || u.H != 10 {
		t.Fatalf("unexpected union: %+v", u)
	}
	c := R(10, 20, 100, 50).Center()
	if c.X != 60 || c.Y != 45 {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestRectEmpty(t *testing.T) {
	if !R(3, 4, 0, 0).Empty() {
		t.Fatalf("zero-size rect should be empty")
	}
	if R(0, 0, 1, 1).Empty() {
		t.Fatalf("unit rect should not be empty")
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 3); got != 1.235 {
		t.Fatalf("FloatRound = %v, want 1.235", got)
	}
	if got := FloatRound(2.5, 0); got != 3 {
		t.Fatalf("FloatRound half-up = %v, want 3", got)
	}
}
