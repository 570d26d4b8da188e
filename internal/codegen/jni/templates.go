package jni

import "github.com/okra-platform/jvppgen/internal/codegen/fragment"

// Field headers. The request header reads the Java value into a C local,
// the reply header only resolves the field id.
var (
	requestHeader = fragment.New(`jfieldID ${field_reference_name}FieldId = (*env)->GetFieldID(env, ${object_name}Class, "${field_name}", "${signature}");
${jni_type} ${field_reference_name} = (*env)->Get${accessor}(env, ${object_name}, ${field_reference_name}FieldId);`)

	replyHeader = fragment.New(`jfieldID ${field_reference_name}FieldId = (*env)->GetFieldID(env, ${object_name}Class, "${field_name}", "${signature}");`)
)

// Array length enforcement, placed right after cnt is read
var (
	fixedLengthCheck = fragment.New(`if (cnt != ${size}) {
    (*env)->ThrowNew(env, (*env)->FindClass(env, "java/lang/IllegalArgumentException"), "${field_name} must have exactly ${size} elements");
    return JNI_ERR;
}`)

	variableLengthCheck = fragment.New(`if (cnt != ${length_value}) {
    (*env)->ThrowNew(env, (*env)->FindClass(env, "java/lang/IllegalArgumentException"), "${field_name} length must equal ${length_name}");
    return JNI_ERR;
}`)
)

// Byte sized primitives need no byte order conversion
var (
	byteStructSetter = fragment.New(`mp->${c_name} = ${field_reference_name};`)

	byteDtoSetter = fragment.New(`(*env)->Set${accessor}(env, ${object_name}, ${field_reference_name}FieldId, mp->${c_name});`)

	byteArrayStructSetter = fragment.New(`if (${field_reference_name}) {
    jsize cnt = (*env)->GetArrayLength(env, ${field_reference_name});
    ${field_length_check}
    (*env)->GetByteArrayRegion(env, ${field_reference_name}, 0, cnt, (jbyte *)mp->${c_name});
}`)

	byteArrayDtoSetter = fragment.New(`{
    jbyteArray ${field_reference_name} = (*env)->NewByteArray(env, ${field_length});
    (*env)->SetByteArrayRegion(env, ${field_reference_name}, 0, ${field_length}, (const jbyte *)mp->${c_name});
    (*env)->SetObjectField(env, ${object_name}, ${field_reference_name}FieldId, ${field_reference_name});
    (*env)->DeleteLocalRef(env, ${field_reference_name});
}`)
)

// Wider primitives are converted between host and network byte order
var (
	structSetter = fragment.New(`mp->${c_name} = ${host_to_net}(${field_reference_name});`)

	dtoSetter = fragment.New(`(*env)->Set${accessor}(env, ${object_name}, ${field_reference_name}FieldId, ${net_to_host}(mp->${c_name}));`)

	arrayStructSetter = fragment.New(`if (${field_reference_name}) {
    size_t _i;
    jsize cnt = (*env)->GetArrayLength(env, ${field_reference_name});
    ${field_length_check}
    ${jni_type} * ${field_reference_name}ArrayElements = (*env)->Get${array_accessor}ArrayElements(env, ${field_reference_name}, NULL);
    for (_i = 0; _i < cnt; _i++) {
        mp->${c_name}[_i] = ${host_to_net}(${field_reference_name}ArrayElements[_i]);
    }
    (*env)->Release${array_accessor}ArrayElements(env, ${field_reference_name}, ${field_reference_name}ArrayElements, 0);
}`)

	arrayDtoSetter = fragment.New(`{
    ${jni_type}Array ${field_reference_name} = (*env)->New${array_accessor}Array(env, ${field_length});
    ${jni_type} * ${field_reference_name}ArrayElements = (*env)->Get${array_accessor}ArrayElements(env, ${field_reference_name}, NULL);
    unsigned int _i;
    for (_i = 0; _i < ${field_length}; _i++) {
        ${field_reference_name}ArrayElements[_i] = ${net_to_host}(mp->${c_name}[_i]);
    }
    (*env)->Release${array_accessor}ArrayElements(env, ${field_reference_name}, ${field_reference_name}ArrayElements, 0);
    (*env)->SetObjectField(env, ${object_name}, ${field_reference_name}FieldId, ${field_reference_name});
    (*env)->DeleteLocalRef(env, ${field_reference_name});
}`)
)
