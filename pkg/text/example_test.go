// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/retoken/pkg/text"
)

func ExampleSimpleReplacer_Replace() {
	replacer := text.NewSimpleReplacer()

	content := strings.NewReader("SELECT * FROM mymimiciv.icu JOIN mymimiciv.hosp")

	result, err := replacer.Replace(context.Background(), content, text.Rule{
		From: "mymimiciv",
		To:   "physionet-data",
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.Original)
	fmt.Printf("Modified: %s\n", result.Modified)
	fmt.Printf("Changes: %d\n", result.Count)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: SELECT * FROM mymimiciv.icu JOIN mymimiciv.hosp
	// Modified: SELECT * FROM physionet-data.icu JOIN physionet-data.hosp
	// Changes: 2
	// Was Modified: true
}

func ExampleSimpleReplacer_Validate() {
	replacer := text.NewSimpleReplacer()

	err := replacer.Validate(text.Rule{To: "physionet-data"})
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: from is required
}
