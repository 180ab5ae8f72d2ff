//go:build libcint && cgo && ecp

package libcint

/*
#cgo LDFLAGS: -lcecp -lm

typedef int (*intor_fn)(double *out, int *dims, int *shls, int *atm, int natm,
                        int *bas, int nbas, double *env, void *opt, double *cache);
typedef void (*optimizer_fn)(void **opt, int *atm, int natm, int *bas, int nbas, double *env);
typedef void (*del_fn)(void **opt);

#define INTOR(name) \
	int name(double *out, int *dims, int *shls, int *atm, int natm, \
	         int *bas, int nbas, double *env, void *opt, double *cache);
#define ECP(name) INTOR(name##_sph) INTOR(name##_cart) \
	void name##_optimizer(void **opt, int *atm, int natm, int *bas, int nbas, double *env);

void ECPdel_optimizer(void **opt);

ECP(ECPscalar)
ECP(ECPscalar_ipnuc)
ECP(ECPscalar_iprinv)
ECP(ECPscalar_ignuc)
*/
import "C"

func init() {
	bindings["ECPscalar"] = ecp(C.intor_fn(C.ECPscalar_sph), C.intor_fn(C.ECPscalar_cart), C.optimizer_fn(C.ECPscalar_optimizer))
	bindings["ECPscalar_ipnuc"] = ecp(C.intor_fn(C.ECPscalar_ipnuc_sph), C.intor_fn(C.ECPscalar_ipnuc_cart), C.optimizer_fn(C.ECPscalar_ipnuc_optimizer))
	bindings["ECPscalar_iprinv"] = ecp(C.intor_fn(C.ECPscalar_iprinv_sph), C.intor_fn(C.ECPscalar_iprinv_cart), C.optimizer_fn(C.ECPscalar_iprinv_optimizer))
	bindings["ECPscalar_ignuc"] = ecp(C.intor_fn(C.ECPscalar_ignuc_sph), C.intor_fn(C.ECPscalar_ignuc_cart), C.optimizer_fn(C.ECPscalar_ignuc_optimizer))
}

// ecp binds a scalar ECP integral. The ECP library has no spinor kernels.
func ecp(sph, cart C.intor_fn, opt C.optimizer_fn) binding {
	return binding{
		spherical: realKernel(sph),
		cartesian: realKernel(cart),
		optimizer: optimizer{build: opt, del: C.del_fn(C.ECPdel_optimizer)},
	}
}
