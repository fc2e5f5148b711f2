// Package vtk reads and writes triangular surface meshes with named
// per-vertex scalar arrays in the legacy ASCII VTK polydata format, the
// interchange format used by cortical surface tooling.
package vtk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/sulcigo/mesh"
)

// ErrFormat is returned when the input is not a legacy ASCII VTK
// polydata file.
var ErrFormat = errors.New("invalid vtk polydata")

// Scalar is a named per-vertex scalar array.
type Scalar struct {
	Name   string
	Values []float64
}

// PolyData is a surface mesh with optional per-vertex scalar arrays.
type PolyData struct {
	Points  []r3.Vec
	Faces   []mesh.Face
	Scalars []Scalar
}

// Mesh returns the mesh view of the polydata.
func (p *PolyData) Mesh() *mesh.Mesh {
	return &mesh.Mesh{Points: p.Points, Faces: p.Faces}
}

// Scalar returns the named scalar array.
func (p *PolyData) Scalar(name string) ([]float64, bool) {
	for _, s := range p.Scalars {
		if s.Name == name {
			return s.Values, true
		}
	}

	return nil, false
}

// SetScalar replaces or appends the named scalar array.
func (p *PolyData) SetScalar(name string, values []float64) {
	for i, s := range p.Scalars {
		if s.Name == name {
			p.Scalars[i].Values = values
			return
		}
	}

	p.Scalars = append(p.Scalars, Scalar{Name: name, Values: values})
}

// Read parses a legacy ASCII VTK polydata stream.
func Read(r io.Reader) (*PolyData, error) {
	br := bufio.NewReader(r)

	// Version and title lines are free-form.
	for i := 0; i < 2; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("%w: truncated header", ErrFormat)
		}
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}

			return "", io.EOF
		}

		return sc.Text(), nil
	}

	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}

		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: expected integer, got %q", ErrFormat, tok)
		}

		return v, nil
	}

	nextFloat := func() (float64, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}

		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: expected number, got %q", ErrFormat, tok)
		}

		return v, nil
	}

	expect := func(want string) error {
		tok, err := next()
		if err != nil {
			return fmt.Errorf("%w: expected %q", ErrFormat, want)
		}

		if tok != want {
			return fmt.Errorf("%w: expected %q, got %q", ErrFormat, want, tok)
		}

		return nil
	}

	if err := expect("ASCII"); err != nil {
		return nil, err
	}

	if err := expect("DATASET"); err != nil {
		return nil, err
	}

	if err := expect("POLYDATA"); err != nil {
		return nil, err
	}

	pd := &PolyData{}
	pointData := 0

	for {
		tok, err := next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		switch tok {
		case "POINTS":
			n, err := nextInt()
			if err != nil {
				return nil, err
			}

			// Scalar type, unused for ASCII.
			if _, err := next(); err != nil {
				return nil, err
			}

			pd.Points = make([]r3.Vec, n)

			for i := 0; i < n; i++ {
				for _, c := range []*float64{&pd.Points[i].X, &pd.Points[i].Y, &pd.Points[i].Z} {
					if *c, err = nextFloat(); err != nil {
						return nil, err
					}
				}
			}

		case "POLYGONS":
			n, err := nextInt()
			if err != nil {
				return nil, err
			}

			// Total token count, redundant for fixed-size triangles.
			if _, err := nextInt(); err != nil {
				return nil, err
			}

			pd.Faces = make([]mesh.Face, 0, n)

			for i := 0; i < n; i++ {
				size, err := nextInt()
				if err != nil {
					return nil, err
				}

				if size != 3 {
					return nil, fmt.Errorf("%w: polygon with %d vertices, only triangles supported", ErrFormat, size)
				}

				var f mesh.Face

				for j := 0; j < 3; j++ {
					if f[j], err = nextInt(); err != nil {
						return nil, err
					}
				}

				pd.Faces = append(pd.Faces, f)
			}

		case "POINT_DATA":
			if pointData, err = nextInt(); err != nil {
				return nil, err
			}

			if pointData != len(pd.Points) {
				return nil, fmt.Errorf("%w: POINT_DATA %d does not match %d points", ErrFormat, pointData, len(pd.Points))
			}

		case "SCALARS":
			name, err := next()
			if err != nil {
				return nil, err
			}

			// Scalar type, then an optional component count.
			if _, err := next(); err != nil {
				return nil, err
			}

			tok, err := next()
			if err != nil {
				return nil, err
			}

			if tok != "LOOKUP_TABLE" {
				if tok != "1" {
					return nil, fmt.Errorf("%w: multi-component scalars not supported", ErrFormat)
				}

				if err := expect("LOOKUP_TABLE"); err != nil {
					return nil, err
				}
			}

			// Table name.
			if _, err := next(); err != nil {
				return nil, err
			}

			values := make([]float64, pointData)

			for i := range values {
				if values[i], err = nextFloat(); err != nil {
					return nil, err
				}
			}

			pd.Scalars = append(pd.Scalars, Scalar{Name: name, Values: values})

		default:
			return nil, fmt.Errorf("%w: unexpected section %q", ErrFormat, tok)
		}
	}

	if pd.Points == nil {
		return nil, fmt.Errorf("%w: no POINTS section", ErrFormat)
	}

	return pd, nil
}

// ReadFile parses a legacy ASCII VTK polydata file.
func ReadFile(path string) (*PolyData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Write serializes the polydata as legacy ASCII VTK.
func Write(w io.Writer, pd *PolyData) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# vtk DataFile Version 2.0")
	fmt.Fprintln(bw, "Surface mesh")
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET POLYDATA")

	fmt.Fprintf(bw, "POINTS %d float\n", len(pd.Points))

	for _, p := range pd.Points {
		fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
	}

	fmt.Fprintf(bw, "POLYGONS %d %d\n", len(pd.Faces), 4*len(pd.Faces))

	for _, f := range pd.Faces {
		fmt.Fprintf(bw, "3 %d %d %d\n", f[0], f[1], f[2])
	}

	if len(pd.Scalars) > 0 {
		fmt.Fprintf(bw, "POINT_DATA %d\n", len(pd.Points))

		for _, s := range pd.Scalars {
			if len(s.Values) != len(pd.Points) {
				return fmt.Errorf("%w: scalar %q has %d values for %d points", ErrFormat, s.Name, len(s.Values), len(pd.Points))
			}

			fmt.Fprintf(bw, "SCALARS %s float 1\n", s.Name)
			fmt.Fprintln(bw, "LOOKUP_TABLE default")

			for _, v := range s.Values {
				fmt.Fprintf(bw, "%g\n", v)
			}
		}
	}

	return bw.Flush()
}

// WriteFile serializes the polydata to a file.
func WriteFile(path string, pd *PolyData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, pd); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
