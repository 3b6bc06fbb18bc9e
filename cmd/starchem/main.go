/*
Copyright © 2026 the StarChem authors.
This file is part of StarChem.

StarChem is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

StarChem is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with StarChem.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command starchem is a command-line interface for the StarChem
// stellar chemical enrichment model.
package main

import (
	"fmt"
	"os"

	"github.com/stellarmodel/starchem/starchemutil"
)

func main() {
	if err := starchemutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
