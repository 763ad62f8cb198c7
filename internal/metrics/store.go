package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas Prometheus del núcleo de datos. Se definen en un paquete
// propio para evitar ciclos entre los servicios y quien las expone.
// El registro y la exposición HTTP los posee la aplicación anfitriona.

var (
	EntityOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_ops_total",
		Help: "Operaciones por entidad y tipo (list/get/insert/update/delete)",
	}, []string{"entity", "op"})

	EntityConflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_conflicts_total",
		Help: "Conflictos de clave natural detectados (pre-check o constraint)",
	}, []string{"entity"})

	AttachmentBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attachment_bytes_written_total",
		Help: "Bytes de adjuntos escritos en disco",
	})

	AttachmentRejects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attachment_rejected_total",
		Help: "Adjuntos rechazados por política (type/size)",
	}, []string{"reason"})

	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_cache_hits_total",
		Help: "Aciertos de cache por entidad",
	}, []string{"entity"})
)

// Register registra las métricas del núcleo en el registry dado
// (o en el default si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		EntityOps, EntityConflicts, AttachmentBytes, AttachmentRejects, CacheHits,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
