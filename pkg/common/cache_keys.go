package common

const (
	CacheKeyCOEClusters      = "coexm.containerinfra.clusters.list"
	CacheKeyClusterTemplates = "coexm.containerinfra.clustertemplates.list"
)
