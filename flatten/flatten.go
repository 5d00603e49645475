/*package flatten collapses several Formations into one. Layer k of the
result at each vertex is the Combine of layer k of every input.

These are the whole-array counterparts of rock.Formation.Combine and
rock.Crust.Flatten and walk columns with the same traversal as the summary
package.
*/
package flatten

import (
	"github.com/phil-mansfield/crust/rock"
)

// Formations flattens fs into a new Formation. None of the inputs are
// modified. fs must not be empty.
func Formations(fs []*rock.Formation, workers int) *rock.Formation {
	if len(fs) == 0 {
		panic("flatten.Formations() given no Formations.")
	}
	out := rock.NewFormation(fs[0].VertexCount())
	rock.EachColumn(fs, workers, func(i int, cols [][]rock.Stratum) {
		Column(out.Column(i), cols)
	})
	return out
}

// Crust flattens every Formation of a Crust into a new Formation. An empty
// Crust flattens to an empty Formation.
func Crust(c *rock.Crust, workers int) *rock.Formation {
	if c.Len() == 0 {
		return rock.NewFormation(c.VertexCount())
	}
	return Formations(c.Formations(), workers)
}

// Column writes the layer-by-layer combination of cols into dst.
func Column(dst []rock.Stratum, cols [][]rock.Stratum) {
	for k := range dst {
		s := rock.Stratum{}
		for _, col := range cols {
			s = rock.Combine(s, col[k])
		}
		dst[k] = s
	}
}
