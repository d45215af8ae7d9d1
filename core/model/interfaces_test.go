package model_test

import (
	"github.com/mizuhira/lsqfit/core/model"
	"github.com/mizuhira/lsqfit/linear"
	"github.com/mizuhira/lsqfit/preprocessing"
)

// Compile-time checks that the estimators satisfy the shared contracts.
var (
	_ model.Regressor       = (*linear.LinearRegression)(nil)
	_ model.ParameterGetter = (*linear.LinearRegression)(nil)
	_ model.ParameterSetter = (*linear.LinearRegression)(nil)

	_ model.Transformer     = (*preprocessing.PolynomialFeatures)(nil)
	_ model.Transformer     = (*preprocessing.StandardScaler)(nil)
	_ model.ParameterGetter = (*preprocessing.StandardScaler)(nil)
)
