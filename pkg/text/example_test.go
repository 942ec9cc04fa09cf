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
	"fmt"

	"github.com/walteh/recipecopy/pkg/text"
)

func ExamplePlaceholders_Expand() {
	p := text.NewPlaceholders()
	p.Set(text.TokenFor("name"), "foo")
	p.Set(text.TokenFor("config-dir"), "config")

	fmt.Println(p.Expand("%CONFIG_DIR%/packages/%NAME%.yaml"))
	fmt.Println(p.Expand("%UNKNOWN%/%NAME%"))

	// Output:
	// config/packages/foo.yaml
	// %UNKNOWN%/foo
}
