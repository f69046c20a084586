// Package backend abstracts over the amplitude buffer a StatevectorEngine
// mutates. The CPU backend is the only implementation the core ships;
// GPU/stabilizer backends are external collaborators (see SPEC_FULL.md §3).
package backend

import "github.com/perclft/qvm/isa"

// StateBackend is the contract a statevector engine drives. Implementations
// own the amplitude buffer and apply unitaries to it; the engine never
// touches raw complex128 slices directly.
type StateBackend interface {
	AllocArray(n int) error
	NumQubits() int

	State() []complex128

	ApplySingleQubitUnitary(q int, u [4]complex128) error
	ApplyTwoQubitUnitary(q0, q1 int, u [16]complex128) error

	SyncHostToDevice()
	SyncDeviceToHost()
	IsGPUBackend() bool
}

// CPU is the in-process StateBackend over a plain []complex128 buffer.
type CPU struct {
	nQubits int
	state   []complex128
}

// NewCPU constructs an unallocated CPU backend; AllocArray must be called
// before any unitary is applied.
func NewCPU() *CPU {
	return &CPU{}
}

func (b *CPU) AllocArray(n int) error {
	if n <= 0 {
		return isa.Errorf(isa.InvalidArgument, "AllocArray requires positive number of qubits")
	}
	b.nQubits = n
	dim := 1 << n
	b.state = make([]complex128, dim)
	b.state[0] = complex(1, 0)
	return nil
}

func (b *CPU) NumQubits() int { return b.nQubits }

func (b *CPU) State() []complex128 { return b.state }

// ApplySingleQubitUnitary applies U to qubit q in place: for every basis
// index i whose q-th bit is zero, j = i | (1<<q), and
// (a_i, a_j) <- (U00*a_i + U01*a_j, U10*a_i + U11*a_j).
func (b *CPU) ApplySingleQubitUnitary(q int, u [4]complex128) error {
	if q < 0 || q >= b.nQubits {
		return isa.Errorf(isa.OutOfRange, "invalid qubit index %d", q)
	}
	dim := len(b.state)
	bit := 1 << q
	for i := 0; i < dim; i++ {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := b.state[i], b.state[j]
			b.state[i] = u[0]*a0 + u[1]*a1
			b.state[j] = u[2]*a0 + u[3]*a1
		}
	}
	return nil
}

// ApplyTwoQubitUnitary gathers amplitudes in basis order |00>,|01>,|10>,|11>
// of (q0,q1), where the left digit is q0's bit (so for CX, q0 is the
// control). It canonicalizes q0 < q1 before gathering/scattering; when that
// swaps the labels it also reorders U's basis, so U still acts on (q0,q1)
// in the order the caller passed them.
func (b *CPU) ApplyTwoQubitUnitary(q0, q1 int, u [16]complex128) error {
	if q0 == q1 {
		return isa.Errorf(isa.InvalidArgument, "two-qubit gate requires distinct targets")
	}
	if q0 > q1 {
		q0, q1 = q1, q0
		perm := [4]int{0, 2, 1, 3}
		var swapped [16]complex128
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				swapped[4*row+col] = u[4*perm[row]+perm[col]]
			}
		}
		u = swapped
	}
	if q0 < 0 || q1 < 0 || q0 >= b.nQubits || q1 >= b.nQubits {
		return isa.Errorf(isa.OutOfRange, "invalid qubit index")
	}
	dim := len(b.state)
	b0, b1 := 1<<q0, 1<<q1
	for i := 0; i < dim; i++ {
		if i&b0 == 0 && i&b1 == 0 {
			i01 := i | b1
			i10 := i | b0
			i11 := i | b0 | b1

			in := [4]complex128{b.state[i], b.state[i01], b.state[i10], b.state[i11]}
			var out [4]complex128
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					out[row] += u[4*row+col] * in[col]
				}
			}
			b.state[i], b.state[i01], b.state[i10], b.state[i11] = out[0], out[1], out[2], out[3]
		}
	}
	return nil
}

func (b *CPU) SyncHostToDevice() {}
func (b *CPU) SyncDeviceToHost() {}
func (b *CPU) IsGPUBackend() bool { return false }
