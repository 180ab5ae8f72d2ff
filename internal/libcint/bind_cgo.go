//go:build libcint && cgo

package libcint

/*
#cgo CFLAGS: -O2 -Wall
#cgo LDFLAGS: -lcint -lm
#include <stdlib.h>

typedef int (*intor_fn)(double *out, int *dims, int *shls, int *atm, int natm,
                        int *bas, int nbas, double *env, void *opt, double *cache);
typedef void (*optimizer_fn)(void **opt, int *atm, int natm, int *bas, int nbas, double *env);
typedef void (*del_fn)(void **opt);

#define INTOR(name) \
	int name(double *out, int *dims, int *shls, int *atm, int natm, \
	         int *bas, int nbas, double *env, void *opt, double *cache);
#define OPTIMIZER(name) \
	void name(void **opt, int *atm, int natm, int *bas, int nbas, double *env);
#define CINT(name) INTOR(name##_sph) INTOR(name##_cart) INTOR(name##_spinor) OPTIMIZER(name##_optimizer)

void CINTdel_optimizer(void **opt);

CINT(int1e_ovlp)
CINT(int1e_kin)
CINT(int1e_nuc)
CINT(int1e_ipovlp)
CINT(int1e_ipkin)
CINT(int1e_ipnuc)
CINT(int1e_iprinv)
CINT(int2c2e)
CINT(int2c2e_ip1)
CINT(int3c2e)
CINT(int3c2e_ip1)
CINT(int3c2e_ip2)
CINT(int2e)
CINT(int2e_ip1)

static int call_intor(intor_fn f, double *out, int *dims, int *shls, int *atm, int natm,
                      int *bas, int nbas, double *env, void *opt, double *cache) {
	return f(out, dims, shls, atm, natm, bas, nbas, env, opt, cache);
}

static void *build_optimizer(optimizer_fn f, int *atm, int natm, int *bas, int nbas, double *env) {
	void *opt = NULL;
	f(&opt, atm, natm, bas, nbas, env);
	return opt;
}

static void destroy_optimizer(del_fn f, void *opt) {
	f(&opt);
}
*/
import "C"

import (
	"unsafe"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
)

var bindings = map[string]binding{
	"int1e_ovlp":   cint(C.intor_fn(C.int1e_ovlp_sph), C.intor_fn(C.int1e_ovlp_cart), C.intor_fn(C.int1e_ovlp_spinor), C.optimizer_fn(C.int1e_ovlp_optimizer)),
	"int1e_kin":    cint(C.intor_fn(C.int1e_kin_sph), C.intor_fn(C.int1e_kin_cart), C.intor_fn(C.int1e_kin_spinor), C.optimizer_fn(C.int1e_kin_optimizer)),
	"int1e_nuc":    cint(C.intor_fn(C.int1e_nuc_sph), C.intor_fn(C.int1e_nuc_cart), C.intor_fn(C.int1e_nuc_spinor), C.optimizer_fn(C.int1e_nuc_optimizer)),
	"int1e_ipovlp": cint(C.intor_fn(C.int1e_ipovlp_sph), C.intor_fn(C.int1e_ipovlp_cart), C.intor_fn(C.int1e_ipovlp_spinor), C.optimizer_fn(C.int1e_ipovlp_optimizer)),
	"int1e_ipkin":  cint(C.intor_fn(C.int1e_ipkin_sph), C.intor_fn(C.int1e_ipkin_cart), C.intor_fn(C.int1e_ipkin_spinor), C.optimizer_fn(C.int1e_ipkin_optimizer)),
	"int1e_ipnuc":  cint(C.intor_fn(C.int1e_ipnuc_sph), C.intor_fn(C.int1e_ipnuc_cart), C.intor_fn(C.int1e_ipnuc_spinor), C.optimizer_fn(C.int1e_ipnuc_optimizer)),
	"int1e_iprinv": cint(C.intor_fn(C.int1e_iprinv_sph), C.intor_fn(C.int1e_iprinv_cart), C.intor_fn(C.int1e_iprinv_spinor), C.optimizer_fn(C.int1e_iprinv_optimizer)),
	"int2c2e":      cint(C.intor_fn(C.int2c2e_sph), C.intor_fn(C.int2c2e_cart), C.intor_fn(C.int2c2e_spinor), C.optimizer_fn(C.int2c2e_optimizer)),
	"int2c2e_ip1":  cint(C.intor_fn(C.int2c2e_ip1_sph), C.intor_fn(C.int2c2e_ip1_cart), C.intor_fn(C.int2c2e_ip1_spinor), C.optimizer_fn(C.int2c2e_ip1_optimizer)),
	"int3c2e":      cint(C.intor_fn(C.int3c2e_sph), C.intor_fn(C.int3c2e_cart), C.intor_fn(C.int3c2e_spinor), C.optimizer_fn(C.int3c2e_optimizer)),
	"int3c2e_ip1":  cint(C.intor_fn(C.int3c2e_ip1_sph), C.intor_fn(C.int3c2e_ip1_cart), C.intor_fn(C.int3c2e_ip1_spinor), C.optimizer_fn(C.int3c2e_ip1_optimizer)),
	"int3c2e_ip2":  cint(C.intor_fn(C.int3c2e_ip2_sph), C.intor_fn(C.int3c2e_ip2_cart), C.intor_fn(C.int3c2e_ip2_spinor), C.optimizer_fn(C.int3c2e_ip2_optimizer)),
	"int2e":        cint(C.intor_fn(C.int2e_sph), C.intor_fn(C.int2e_cart), C.intor_fn(C.int2e_spinor), C.optimizer_fn(C.int2e_optimizer)),
	"int2e_ip1":    cint(C.intor_fn(C.int2e_ip1_sph), C.intor_fn(C.int2e_ip1_cart), C.intor_fn(C.int2e_ip1_spinor), C.optimizer_fn(C.int2e_ip1_optimizer)),
}

func cint(sph, cart, spinor C.intor_fn, opt C.optimizer_fn) binding {
	return binding{
		spherical: realKernel(sph),
		cartesian: realKernel(cart),
		spinor:    complexKernel(spinor),
		optimizer: optimizer{build: opt, del: C.del_fn(C.CINTdel_optimizer)},
	}
}

// handle owns a C optimizer pointer.
type handle struct {
	ptr unsafe.Pointer
}

// optimizer builds and frees C optimizers through one build/delete pair.
type optimizer struct {
	build C.optimizer_fn
	del   C.del_fn
}

func (o optimizer) Build(t *basis.Tables) kernel.Optimizer {
	p := C.build_optimizer(o.build, intPtr(t.Atm), C.int(t.NAtm), intPtr(t.Bas), C.int(t.NBas), doublePtr(t.Env))
	return &handle{ptr: p}
}

func (o optimizer) Destroy(opt kernel.Optimizer) {
	h, ok := opt.(*handle)
	if !ok || h == nil || h.ptr == nil {
		return
	}
	C.destroy_optimizer(o.del, h.ptr)
	h.ptr = nil
}

func realKernel(fn C.intor_fn) kernel.Kernel[float64] {
	return kernel.Func[float64](func(out []float64, dims, shells []int32, t *basis.Tables, opt kernel.Optimizer, cache []float64) int {
		return call(fn, unsafe.Pointer(doublePtr(out)), dims, shells, t, opt, cache)
	})
}

func complexKernel(fn C.intor_fn) kernel.Kernel[complex128] {
	return kernel.Func[complex128](func(out []complex128, dims, shells []int32, t *basis.Tables, opt kernel.Optimizer, cache []float64) int {
		var p unsafe.Pointer
		if len(out) > 0 {
			p = unsafe.Pointer(unsafe.SliceData(out))
		}
		return call(fn, p, dims, shells, t, opt, cache)
	})
}

// call runs fn. A nil out is a probe and returns the cache size in float64 elements;
// libcint reports only whether a block is non-zero, so computed blocks return 0.
func call(fn C.intor_fn, out unsafe.Pointer, dims, shells []int32, t *basis.Tables, opt kernel.Optimizer, cache []float64) int {
	var optp unsafe.Pointer
	if h, ok := opt.(*handle); ok && h != nil {
		optp = h.ptr
	}
	n := C.call_intor(fn, (*C.double)(out), intPtr(dims), intPtr(shells),
		intPtr(t.Atm), C.int(t.NAtm), intPtr(t.Bas), C.int(t.NBas), doublePtr(t.Env),
		optp, doublePtr(cache))
	if out == nil {
		return int(n)
	}
	return 0
}

func intPtr(s []int32) *C.int {
	if len(s) == 0 {
		return nil
	}
	return (*C.int)(unsafe.Pointer(unsafe.SliceData(s)))
}

func doublePtr(s []float64) *C.double {
	if len(s) == 0 {
		return nil
	}
	return (*C.double)(unsafe.Pointer(unsafe.SliceData(s)))
}
